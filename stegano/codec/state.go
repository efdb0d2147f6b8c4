package codec
import (
	"fmt"
)

/*
 * session states. the encoder goes
 *	Created -> SourceLoaded -> DataLoaded -> Encoded -> Written
 * and the decoder goes
 *	Created -> SourceLoaded -> OutputLoaded -> Decoded -> Written
 * transitions never go backwards.
 */
type State uint8

const (
	Created State = iota
	SourceLoaded
	DataLoaded
	OutputLoaded
	Encoded
	Decoded
	Written
)

func(s State) String() string {
	switch s {
	case Created:
		return "created"
	case SourceLoaded:
		return "source loaded"
	case DataLoaded:
		return "data loaded"
	case OutputLoaded:
		return "output loaded"
	case Encoded:
		return "encoded"
	case Decoded:
		return "decoded"
	case Written:
		return "written"
	}
	return fmt.Sprintf( "state(%d)", uint8(s) )
}

func expectState( current, want State, what string ) error {
	if current != want {
		return fmt.Errorf("%w: %s requires state %q, got %q", ErrPrecondition, what, want, current)
	}
	return nil
}
