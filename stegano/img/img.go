package img
import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"stegocoder/stegano/codec"
)

type Format string

const (
	PNG	Format = "png"
	BMP	Format = "bmp"
	TIFF	Format = "tiff"
	QOI	Format = "qoi"
	// decode only, these would change channel values on write
	JPEG	Format = "jpeg"
	GIF	Format = "gif"
	WEBP	Format = "webp"

	Unknown	Format = ""
)

var (
	ErrUnknownFormat = errors.New("unsupported image format")
	ErrLossyFormat = errors.New("lossy image format cannot carry data")
)

/*
 * Lossless reports whether the format can keep every channel value on
 * write. bmp drops alpha and qoi premultiplies it, so both only keep
 * opaque images, see Keeps.
 */
func(f Format) Lossless() bool {
	switch f {
	case PNG, BMP, TIFF, QOI:
		return true
	}
	return false
}

func ParseFormat( name string ) (Format, error) {
	switch strings.ToLower( strings.TrimPrefix( name, "." ) ) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "qoi":
		return QOI, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// format named by the file extension, Unknown if there is none we know
func FormatFromPath( path string ) Format {
	f, err := ParseFormat( filepath.Ext( path ) )
	if err != nil {
		return Unknown
	}
	return f
}

// DetectFormat looks at the magic bytes only.
func DetectFormat( data []byte ) Format {
	switch {
	case bytes.HasPrefix( data, []byte("\x89PNG\r\n\x1a\n") ):
		return PNG
	case bytes.HasPrefix( data, []byte("GIF8") ):
		return GIF
	case bytes.HasPrefix( data, []byte{ 0xff, 0xd8, 0xff } ):
		return JPEG
	case bytes.HasPrefix( data, []byte("BM") ):
		return BMP
	case bytes.HasPrefix( data, []byte("II*\x00") ), bytes.HasPrefix( data, []byte("MM\x00*") ):
		return TIFF
	case bytes.HasPrefix( data, []byte("qoif") ):
		return QOI
	case len(data) >= 12 && bytes.Equal( data[:4], []byte("RIFF") ) && bytes.Equal( data[8:12], []byte("WEBP") ):
		return WEBP
	}
	return Unknown
}

// Decode turns an encoded image into a pixel grid.
func Decode( data []byte ) (*codec.Grid, Format, error) {
	f := DetectFormat( data )
	var (
		m	image.Image
		err	error
	)
	r := bytes.NewReader( data )
	switch f {
	case PNG:
		m, err = decodePNG( r )
	case BMP:
		m, err = decodeBMP( r )
	case TIFF:
		m, err = decodeTIFF( r )
	case QOI:
		m, err = decodeQOI( r )
	case JPEG:
		m, err = decodeJPEG( r )
	case GIF:
		m, err = decodeGIF( r )
	case WEBP:
		m, err = decodeWEBP( r )
	default:
		return nil, Unknown, ErrUnknownFormat
	}
	if err != nil {
		return nil, f, fmt.Errorf("failed to decode %s image: %w", f, err)
	}
	return ToGrid( m ), f, nil
}

// Keeps reports whether g comes back unchanged, alpha included, after a write as f.
func(f Format) Keeps( g *codec.Grid ) bool {
	switch f {
	case PNG, TIFF:
		return true
	case BMP, QOI:
		return Opaque( g )
	}
	return false
}

func Opaque( g *codec.Grid ) bool {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At( x, y ).A != 0xff {
				return false
			}
		}
	}
	return true
}

// CheckWritable fails when writing g as f would alter any channel value.
func CheckWritable( g *codec.Grid, f Format ) error {
	if f == Unknown {
		return ErrUnknownFormat
	}
	if !f.Lossless() {
		return fmt.Errorf("%w: %s", ErrLossyFormat, f)
	}
	if !f.Keeps( g ) {
		return fmt.Errorf("%w: %s cannot store transparent pixels", ErrLossyFormat, f)
	}
	return nil
}

// Encode writes the grid, refusing any format that would alter it.
func Encode( g *codec.Grid, f Format ) ([]byte, error) {
	if err := CheckWritable( g, f ); err != nil {
		return nil, err
	}
	m := FromGrid( g )
	buf := new(bytes.Buffer)
	var err error
	switch f {
	case PNG:
		err = encodePNG( buf, m )
	case BMP:
		err = encodeBMP( buf, m )
	case TIFF:
		err = encodeTIFF( buf, m )
	case QOI:
		err = encodeQOI( buf, m )
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", f, err)
	}
	return buf.Bytes(), nil
}

func Load( path string ) (*codec.Grid, Format, error) {
	data, err := os.ReadFile( path )
	if err != nil {
		return nil, Unknown, err
	}
	g, f, err := Decode( data )
	if err != nil {
		return nil, f, fmt.Errorf("%s: %w", path, err)
	}
	return g, f, nil
}

/*
 * Save picks the format from the extension of path. Paths without a known
 * extension use fallback. Lossy formats are refused before encoding.
 */
func Save( path string, g *codec.Grid, fallback Format ) error {
	f := FormatFromPath( path )
	if f == Unknown {
		f = fallback
	}
	data, err := Encode( g, f )
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile( path, data, 0660 )
}

// OutputFormat is the format Save would use for path.
func OutputFormat( path string, fallback Format ) (Format, error) {
	f := FormatFromPath( path )
	if f == Unknown {
		f = fallback
	}
	if !f.Lossless() {
		if f == Unknown {
			return f, ErrUnknownFormat
		}
		return f, fmt.Errorf("%w: %s", ErrLossyFormat, f)
	}
	return f, nil
}

// ToGrid copies every pixel as non-premultiplied color.
func ToGrid( m image.Image ) *codec.Grid {
	bounds := m.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	g := codec.NewGrid( width, height )

	if nrgba, ok := m.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g.Set( x, y, nrgba.NRGBAAt( bounds.Min.X + x, bounds.Min.Y + y ) )
			}
		}
		return g
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert( m.At( bounds.Min.X + x, bounds.Min.Y + y ) ).(color.NRGBA)
			g.Set( x, y, c )
		}
	}
	return g
}

func FromGrid( g *codec.Grid ) *image.NRGBA {
	m := image.NewNRGBA( image.Rect( 0, 0, g.Width(), g.Height() ) )
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			m.SetNRGBA( x, y, g.At( x, y ) )
		}
	}
	return m
}
