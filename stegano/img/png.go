package img
import (
	"image"
	"image/png"
	"io"
)

func decodePNG( r io.Reader ) (image.Image, error) {
	return png.Decode( r )
}

func encodePNG( w io.Writer, m image.Image ) error {
	enc := png.Encoder{ CompressionLevel: png.BestCompression }
	return enc.Encode( w, m )
}
