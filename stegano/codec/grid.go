package codec
import (
	"fmt"
	"image/color"
)

// Point is a pixel coordinate, X in [0, width) and Y in [0, height).
type Point struct {
	X	int
	Y	int
}

/*
 * Grid is a width x height array of non-premultiplied colors.
 * One grid is the carrier, the other one is the working (stego) copy.
 */
type Grid struct {
	width	int
	height	int
	pix	[]color.NRGBA
}

func NewGrid( width, height int ) *Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Grid{
		width,
		height,
		make( []color.NRGBA, width * height ),
	}
}

func(g *Grid) Width() int {
	return g.width
}

func(g *Grid) Height() int {
	return g.height
}

// total amount of pixels
func(g *Grid) Len() int {
	return g.width * g.height
}

func(g *Grid) At( x, y int ) color.NRGBA {
	return g.pix[ y * g.width + x ]
}

func(g *Grid) Set( x, y int, c color.NRGBA ) {
	g.pix[ y * g.width + x ] = c
}

func(g *Grid) Contains( p Point ) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

func(g *Grid) SameSize( other *Grid ) bool {
	return other != nil && g.width == other.width && g.height == other.height
}

func(g *Grid) Clone() *Grid {
	pix := make( []color.NRGBA, len(g.pix) )
	copy( pix, g.pix )
	return &Grid{ g.width, g.height, pix }
}

// reports whether both grids hold the very same channel values
func(g *Grid) Equal( other *Grid ) bool {
	if !g.SameSize( other ) {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

func(g *Grid) String() string {
	return fmt.Sprintf( "%dx%d", g.width, g.height )
}

/*
 * Occupancy tracks which pixels already carry a byte during one session.
 * Cells only ever go from free to taken.
 */
type Occupancy struct {
	width	int
	height	int
	taken	[]bool
	count	int
}

func NewOccupancy( width, height int ) *Occupancy {
	return &Occupancy{
		width,
		height,
		make( []bool, width * height ),
		0,
	}
}

func(o *Occupancy) Taken( x, y int ) bool {
	return o.taken[ y * o.width + x ]
}

func(o *Occupancy) Mark( x, y int ) {
	idx := y * o.width + x
	if !o.taken[idx] {
		o.taken[idx] = true
		o.count++
	}
}

// amount of cells already marked
func(o *Occupancy) Count() int {
	return o.count
}

func(o *Occupancy) Full() bool {
	return o.count >= len(o.taken)
}
