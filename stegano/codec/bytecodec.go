package codec
import (
	"image/color"
)

/*
 * one byte per pixel: 3 bits go to red, 2 to green, 3 to blue.
 * bits are XOR-ed into the carrier values, alpha is never touched.
 */
const (
	lowMask		= 0b00000111
	midMask		= 0b00011000
	highMask	= 0b11100000

	midShift	= 3
	highShift	= 5
)

func ByteEncode( carrier color.NRGBA, b byte ) color.NRGBA {
	return color.NRGBA{
		R: carrier.R ^ ( b & lowMask ),
		G: carrier.G ^ ( ( b & midMask ) >> midShift ),
		B: carrier.B ^ ( ( b & highMask ) >> highShift ),
		A: carrier.A,
	}
}

func ByteDecode( carrier, stego color.NRGBA ) byte {
	low := carrier.R ^ stego.R
	mid := ( carrier.G ^ stego.G ) << midShift
	high := ( carrier.B ^ stego.B ) << highShift
	return low | mid | high
}
