package codec
import (
	"fmt"
)

/*
 * Decoder recovers a payload from a stego grid using the carrier as key.
 * Seed and length come from the header, nothing else is needed.
 */
type Decoder struct {
	state	State
	seed	int32
	source	*Grid
	stego	*Grid
	read	*Occupancy
	data	[]byte
}

func NewDecoder() *Decoder {
	return &Decoder{
		state: Created,
	}
}

func(d *Decoder) State() State {
	return d.state
}

// seed found in the header, zero before decoding
func(d *Decoder) Seed() int32 {
	return d.seed
}

func(d *Decoder) Length() int {
	return len(d.data)
}

func(d *Decoder) LoadSource( source *Grid ) error {
	if err := expectState( d.state, Created, "loading source" ); err != nil {
		return err
	}
	if source == nil {
		return fmt.Errorf("%w: nil source grid", ErrPrecondition)
	}
	d.source = source
	d.state = SourceLoaded
	return nil
}

func(d *Decoder) LoadStego( stego *Grid ) error {
	if err := expectState( d.state, SourceLoaded, "loading output image" ); err != nil {
		return fmt.Errorf("source image has to be loaded before output image: %w", err)
	}
	if stego == nil {
		return fmt.Errorf("%w: nil stego grid", ErrPrecondition)
	}
	if !d.source.SameSize( stego ) {
		return fmt.Errorf("%w: source is %s, output is %s", ErrSizeMismatch, d.source, stego)
	}
	d.stego = stego
	d.state = OutputLoaded
	return nil
}

// Decode is a no-op once it has succeeded.
func(d *Decoder) Decode() error {
	if d.state == Decoded || d.state == Written {
		return nil
	}
	if err := expectState( d.state, OutputLoaded, "decoding" ); err != nil {
		return fmt.Errorf("output image has to be loaded before decoding: %w", err)
	}
	width, height := d.source.Width(), d.source.Height()
	d.read = NewOccupancy( width, height )
	if width < MinSide || height < MinSide || Capacity( width, height ) < HeaderSize {
		return fmt.Errorf("%w: image %dx%d cannot hold a header", ErrIntegrity, width, height)
	}

	seedBytes, err := d.readBytes( newFixedPlacement( SeedPoints ), len(SeedPoints) )
	if err != nil {
		return err
	}
	seed := bytesInt32( seedBytes )

	lengthBytes, err := d.readBytes( newFixedPlacement( LengthPoints ), len(LengthPoints) )
	if err != nil {
		return err
	}
	length := int( bytesInt32( lengthBytes ) )
	if length < 0 || length > MaxPayload( width, height ) {
		return fmt.Errorf("%w: decoded length %d outside [0, %d], wrong carrier or tampered image",
			ErrIntegrity, length, MaxPayload( width, height ))
	}

	gen := NewGenerator( seed )
	data, err := d.readBytes( newRandomPlacement( gen, width, height ), length )
	if err != nil {
		return err
	}
	d.seed = seed
	d.data = data
	d.state = Decoded
	return nil
}

// Output decodes when needed and returns the payload.
func(d *Decoder) Output() ([]byte, error) {
	if err := d.Decode(); err != nil {
		return nil, err
	}
	d.state = Written
	return d.data, nil
}

func(d *Decoder) readBytes( p Placement, n int ) ([]byte, error) {
	buf := make( []byte, n )
	for i := range buf {
		pt, err := claim( d.read, p )
		if err != nil {
			return nil, err
		}
		buf[i] = ByteDecode( d.source.At( pt.X, pt.Y ), d.stego.At( pt.X, pt.Y ) )
	}
	return buf, nil
}
