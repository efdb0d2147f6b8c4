package img
import (
	"image"
	"io"

	"github.com/xfmoulet/qoi"
)

func decodeQOI( r io.Reader ) (image.Image, error) {
	return qoi.Decode( r )
}

func encodeQOI( w io.Writer, m image.Image ) error {
	return qoi.Encode( w, m )
}
