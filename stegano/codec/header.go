package codec
import (
	"encoding/binary"
	"fmt"
)

const (
	HeaderSize = 8
	// smallest width and height able to hold the header cells
	MinSide = 3
)

// little-endian byte i of the seed goes to SeedPoints[i], same for the length
var (
	SeedPoints = []Point{ {0, 0}, {0, 1}, {1, 0}, {1, 1} }
	LengthPoints = []Point{ {2, 0}, {2, 1}, {0, 2}, {1, 2} }
)

// Capacity is the amount of bytes (header included) a carrier may hold.
// 7/8 of the pixel count, kept for compatibility with existing images.
func Capacity( width, height int ) int {
	return ( 7 * width * height ) / 8
}

// MaxPayload is Capacity minus the header, never negative.
func MaxPayload( width, height int ) int {
	if width < MinSide || height < MinSide {
		return 0
	}
	n := Capacity( width, height ) - HeaderSize
	if n < 0 {
		return 0
	}
	return n
}

func checkCapacity( width, height, length int ) error {
	if width < MinSide || height < MinSide {
		return fmt.Errorf("%w: image %dx%d is smaller than %dx%d", ErrCapacity,
			width, height, MinSide, MinSide)
	}
	if length + HeaderSize > Capacity( width, height ) {
		return fmt.Errorf("%w: %d bytes + %d header bytes exceed 7/8 of %d pixels",
			ErrCapacity, length, HeaderSize, width * height)
	}
	return nil
}

func int32Bytes( v int32 ) []byte {
	buf := make( []byte, 4 )
	binary.LittleEndian.PutUint32( buf, uint32(v) )
	return buf
}

func bytesInt32( buf []byte ) int32 {
	return int32( binary.LittleEndian.Uint32( buf ) )
}
