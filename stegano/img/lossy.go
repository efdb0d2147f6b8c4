package img
import (
	"image"
	"image/gif"
	"image/jpeg"
	"io"

	"golang.org/x/image/webp"
)

/*
 * carriers may come in a lossy format: decoding is deterministic, so the
 * same file always gives the same grid. the stego image never can.
 */
func decodeJPEG( r io.Reader ) (image.Image, error) {
	return jpeg.Decode( r )
}

// first frame only
func decodeGIF( r io.Reader ) (image.Image, error) {
	return gif.Decode( r )
}

func decodeWEBP( r io.Reader ) (image.Image, error) {
	return webp.Decode( r )
}
