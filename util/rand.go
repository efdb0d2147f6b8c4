package util
import (
	"math"
	"math/big"
	"crypto/rand"
)

// fresh placement seed in [0, MaxInt32) from the system entropy source
func NewSeed() (int32, error) {
	n, err := rand.Int( rand.Reader, big.NewInt( math.MaxInt32 ) )
	if err != nil {
		return 0, err
	}
	return int32( n.Int64() ), nil
}
