package codec
import (
	"errors"
)

/*
 * errors returned by the codec. all of them are final, there is nothing
 * to retry. callers should test them with errors.Is since every one is
 * wrapped with some context.
 */
var (
	// api used out of order
	ErrPrecondition = errors.New("precondition failed")
	// payload and header do not fit into the carrier
	ErrCapacity = errors.New("not enough capacity")
	// carrier and stego image differ in dimensions
	ErrSizeMismatch = errors.New("images are not the same size")
	// decoded header makes no sense for this carrier
	ErrIntegrity = errors.New("integrity check failed")
)
