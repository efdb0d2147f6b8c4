package img
import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

// opaque images are written as 24 bit, anything else as 32 bit with alpha
func decodeBMP( r io.Reader ) (image.Image, error) {
	return bmp.Decode( r )
}

func encodeBMP( w io.Writer, m image.Image ) error {
	return bmp.Encode( w, m )
}
