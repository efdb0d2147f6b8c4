package codec
import (
	"image/color"
	"math/rand"
)

// random carrier with every channel populated, alpha included
func randomGrid( rnd *rand.Rand, width, height int ) *Grid {
	g := NewGrid( width, height )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set( x, y, color.NRGBA{
				uint8(rnd.Intn(256)),
				uint8(rnd.Intn(256)),
				uint8(rnd.Intn(256)),
				uint8(rnd.Intn(256)),
			})
		}
	}
	return g
}

func randomBytes( rnd *rand.Rand, n int ) []byte {
	buf := make( []byte, n )
	rnd.Read( buf )
	return buf
}

func encode( carrier *Grid, seed int32, data []byte ) (*Grid, error) {
	enc := NewEncoder( seed )
	if err := enc.LoadSource( carrier ); err != nil {
		return nil, err
	}
	if err := enc.LoadData( data ); err != nil {
		return nil, err
	}
	return enc.Output()
}

func decode( carrier, stego *Grid ) ([]byte, error) {
	dec := NewDecoder()
	if err := dec.LoadSource( carrier ); err != nil {
		return nil, err
	}
	if err := dec.LoadStego( stego ); err != nil {
		return nil, err
	}
	return dec.Output()
}
