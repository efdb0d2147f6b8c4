package codec
import (
	"fmt"
	"math/rand"
)

// Generator yields integers in [lower, upper).
type Generator interface {
	Next( lower, upper int ) int
}

/*
 * SeededGenerator is the placement generator. Two generators built from
 * the same seed return the same sequence, which is all the decoder needs
 * to replay the encoder's draws.
 */
type SeededGenerator struct {
	seed	int32
	rnd	*rand.Rand
}

func NewGenerator( seed int32 ) *SeededGenerator {
	return &SeededGenerator{
		seed,
		rand.New( rand.NewSource( int64(seed) ) ),
	}
}

func(g *SeededGenerator) Seed() int32 {
	return g.seed
}

func(g *SeededGenerator) Next( lower, upper int ) int {
	if upper <= lower {
		return lower
	}
	return lower + g.rnd.Intn( upper - lower )
}

/*
 * Placement produces candidate coordinates. There are two of them:
 * fixed (header) and random (payload). Both are claimed through the
 * same occupancy, so collision handling lives in one place.
 */
type Placement interface {
	Next() (Point, error)
}

type fixedPlacement struct {
	points	[]Point
	idx	int
}

func newFixedPlacement( points []Point ) *fixedPlacement {
	return &fixedPlacement{ points, 0 }
}

func(f *fixedPlacement) Next() (Point, error) {
	if f.idx >= len(f.points) {
		return Point{}, fmt.Errorf("%w: fixed placement exhausted", ErrPrecondition)
	}
	p := f.points[ f.idx ]
	f.idx++
	return p, nil
}

// one x draw then one y draw per byte, always in that order
type randomPlacement struct {
	gen	Generator
	width	int
	height	int
}

func newRandomPlacement( gen Generator, width, height int ) *randomPlacement {
	return &randomPlacement{ gen, width, height }
}

func(r *randomPlacement) Next() (Point, error) {
	x := r.gen.Next( 0, r.width )
	y := r.gen.Next( 0, r.height )
	return Point{ x, y }, nil
}

/*
 * Resolve returns (x, y) when it is free. Otherwise it scans
 * (x+i mod W, y+j mod H) for i in [0,W), j in [0,H) and returns the
 * first free cell. The scan depends on geometry only, so encoder and
 * decoder land on the same cell given the same occupancy history.
 * The occupancy itself is not modified.
 */
func Resolve( occ *Occupancy, x, y int ) (Point, error) {
	if x < 0 || y < 0 || x >= occ.width || y >= occ.height {
		return Point{}, fmt.Errorf("%w: (%d, %d) outside of %dx%d", ErrPrecondition,
			x, y, occ.width, occ.height)
	}
	if !occ.Taken( x, y ) {
		return Point{ x, y }, nil
	}
	for i := 0; i < occ.width; i++ {
		for j := 0; j < occ.height; j++ {
			newX := ( x + i ) % occ.width
			newY := ( y + j ) % occ.height
			if !occ.Taken( newX, newY ) {
				return Point{ newX, newY }, nil
			}
		}
	}
	return Point{}, fmt.Errorf("%w: every pixel is already used", ErrCapacity)
}

// draw, resolve and mark one coordinate
func claim( occ *Occupancy, p Placement ) (Point, error) {
	candidate, err := p.Next()
	if err != nil {
		return Point{}, err
	}
	pt, err := Resolve( occ, candidate.X, candidate.Y )
	if err != nil {
		return Point{}, err
	}
	occ.Mark( pt.X, pt.Y )
	return pt, nil
}
