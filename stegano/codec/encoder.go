package codec
import (
	"fmt"
)

/*
 * Encoder hides one payload inside a copy of the carrier grid.
 * The seed is passed in by the caller, so the same seed, carrier and
 * payload always produce the same stego grid.
 */
type Encoder struct {
	state	State
	seed	int32
	source	*Grid
	out	*Grid		// nil until Encode
	written	*Occupancy
	data	[]byte
}

func NewEncoder( seed int32 ) *Encoder {
	return &Encoder{
		state: Created,
		seed: seed,
	}
}

func(e *Encoder) State() State {
	return e.state
}

func(e *Encoder) Seed() int32 {
	return e.seed
}

// payload length in bytes
func(e *Encoder) Length() int {
	return len(e.data)
}

func(e *Encoder) LoadSource( source *Grid ) error {
	if err := expectState( e.state, Created, "loading source" ); err != nil {
		return err
	}
	if source == nil {
		return fmt.Errorf("%w: nil source grid", ErrPrecondition)
	}
	e.source = source
	e.state = SourceLoaded
	return nil
}

// LoadData checks capacity before anything is written.
func(e *Encoder) LoadData( data []byte ) error {
	if err := expectState( e.state, SourceLoaded, "loading data" ); err != nil {
		return fmt.Errorf("source has to be loaded before data: %w", err)
	}
	if err := checkCapacity( e.source.Width(), e.source.Height(), len(data) ); err != nil {
		return err
	}
	e.data = make( []byte, len(data) )
	copy( e.data, data )
	e.state = DataLoaded
	return nil
}

// Encode is a no-op once it has succeeded.
func(e *Encoder) Encode() error {
	if e.state == Encoded || e.state == Written {
		return nil
	}
	if err := expectState( e.state, DataLoaded, "encoding" ); err != nil {
		return fmt.Errorf("data has to be loaded before encoding: %w", err)
	}
	// a failed attempt must not leave cells behind
	e.out = e.source.Clone()
	e.written = NewOccupancy( e.source.Width(), e.source.Height() )

	if err := e.write( newFixedPlacement( SeedPoints ), int32Bytes( e.seed ) ); err != nil {
		return err
	}
	if err := e.write( newFixedPlacement( LengthPoints ), int32Bytes( int32(len(e.data)) ) ); err != nil {
		return err
	}
	gen := NewGenerator( e.seed )
	payload := newRandomPlacement( gen, e.source.Width(), e.source.Height() )
	if err := e.write( payload, e.data ); err != nil {
		return err
	}
	e.state = Encoded
	return nil
}

// Output encodes when needed and hands back the stego grid.
func(e *Encoder) Output() (*Grid, error) {
	if err := e.Encode(); err != nil {
		return nil, err
	}
	e.state = Written
	return e.out, nil
}

func(e *Encoder) write( p Placement, data []byte ) error {
	for _, b := range data {
		pt, err := claim( e.written, p )
		if err != nil {
			return err
		}
		e.out.Set( pt.X, pt.Y, ByteEncode( e.source.At( pt.X, pt.Y ), b ) )
	}
	return nil
}
