package img
import (
	"bytes"
	"image/color"
	"math/rand"

	"stegocoder/stegano/codec"
)

/*
 * SelfTest fills a random width x height carrier, hides one random byte
 * in every pixel, sends the result through the encoder and decoder of
 * format and reads the bytes back. in and out must be equal.
 */
func SelfTest( seed int64, width, height int, f Format ) (in, out []byte, err error) {
	rnd := rand.New( rand.NewSource( seed ) )
	in = make( []byte, width * height )
	rnd.Read( in )

	carrier := codec.NewGrid( width, height )
	px := make( []byte, 4 )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rnd.Read( px )
			carrier.Set( x, y, color.NRGBA{ px[0], px[1], px[2], px[3] } )
		}
	}

	stego := codec.NewGrid( width, height )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			stego.Set( x, y, codec.ByteEncode( carrier.At( x, y ), in[ y * width + x ] ) )
		}
	}

	data, err := Encode( stego, f )
	if err != nil {
		return nil, nil, err
	}
	stego, _, err = Decode( data )
	if err != nil {
		return nil, nil, err
	}

	out = make( []byte, width * height )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[ y * width + x ] = codec.ByteDecode( carrier.At( x, y ), stego.At( x, y ) )
		}
	}
	return in, out, nil
}

func SelfTestPassed( in, out []byte ) bool {
	return bytes.Equal( in, out )
}
