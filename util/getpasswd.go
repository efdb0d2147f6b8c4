package util
import (
	"os"
	"fmt"
	"golang.org/x/term"
)

// just a wrapper for term...
func GetPasswd( prompt string ) ([]byte, error) {
	fd := int( os.Stdin.Fd() )
	if !term.IsTerminal( fd ) {
		return nil, fmt.Errorf("cannot read password: stdin is not a terminal")
	}
	fmt.Fprint( os.Stderr, prompt )
	bytepw, err := term.ReadPassword( fd )
	fmt.Fprintln( os.Stderr )
	return bytepw, err
}

// colours only make sense on a terminal
func IsTerminal( f *os.File ) bool {
	return term.IsTerminal( int( f.Fd() ) )
}
