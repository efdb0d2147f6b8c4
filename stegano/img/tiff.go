package img
import (
	"image"
	"io"

	"golang.org/x/image/tiff"
)

func decodeTIFF( r io.Reader ) (image.Image, error) {
	return tiff.Decode( r )
}

func encodeTIFF( w io.Writer, m image.Image ) error {
	return tiff.Encode( w, m, &tiff.Options{
		Compression: tiff.Deflate,
		Predictor: true,
	})
}
