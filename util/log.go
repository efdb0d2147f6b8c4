package util
import (
	"io"
	"os"
	"sync"
	"time"
	"stegocoder/cryptography"
)

/*
 * a custom logger. lines go to a file, optionally encrypted with a
 * password, or to stderr when no file is configured.
 */
const (
	Error = 1
	Warning = 2
	Info = 4

	RedColor = "\033[31m"
	YellowColor = "\033[33m"
	GreenColor = "\033[32m"
	CyanColor = "\033[36m"
	ResetColor = "\033[0m"
)

type LoggerInfo struct {
	Filename	string		`yaml:"filename"`	// empty means stderr
	Password	string		`yaml:"password"`	// <base64-salt>:<password>
	IsEncrypted	bool		`yaml:"is_encrypted"`
	IsColored	bool		`yaml:"is_colored"`
	SaveTime	bool		`yaml:"save_time"`
	Mode		uint8		`yaml:"mode"`
}

type Logger struct {
	li		*LoggerInfo
	out		io.Writer
	mtx		sync.Mutex
}

func NewLogger( li *LoggerInfo ) *Logger {
	return &Logger{
		li,
		os.Stderr,
		sync.Mutex{},
	}
}

// used instead of stderr when no file is configured
func(l *Logger) SetOutput( w io.Writer ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.out = w
}

func(l *Logger) colorize( line string, color string ) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func(l *Logger) prepareString( str string, clr string ) string {
	toWrite := l.colorize( str, clr ) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format( time.RFC3339 ) + " "
	}
	return toWrite
}

func(l *Logger) LogString( s string ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.li.Filename == "" {
		io.WriteString( l.out, s + "\n" )
		return
	}
	if l.li.IsEncrypted == false {
		// just append line
		f, err := os.OpenFile( l.li.Filename, os.O_APPEND | os.O_CREATE | os.O_WRONLY, 0600 )
		if err == nil {
			defer f.Close()
			f.WriteString( s + "\n" )
		}
		return
	}
	sealer, err := cryptography.NewSealer( l.li.Password )
	if err != nil {
		return
	}
	var currentLog []byte
	if data, err := os.ReadFile( l.li.Filename ); err == nil {
		currentLog, err = sealer.Open( data )
		if err != nil {
			// never overwrite a log we cannot read
			return
		}
	}
	newData, err := sealer.Seal( append( currentLog, []byte(s + "\n")... ) )
	if err == nil {
		os.WriteFile( l.li.Filename, newData, 0600 )
	}
}

// Reports tells whether messages of this level are written at all.
func(l *Logger) Reports( level uint8 ) bool {
	return l.li.Mode & level == level
}

func(l *Logger) LogError(err error) {
	if l.li.Mode & Error == Error {
		toWrite := l.prepareString("[ERROR]", RedColor) + err.Error()
		l.LogString( toWrite )
	}
}

func(l *Logger) LogWarning( warning string ) {
	if l.li.Mode & Warning == Warning {
		toWrite := l.prepareString("[WARNING]", YellowColor) + warning
		l.LogString( toWrite )
	}
}


func(l *Logger) LogInfo( info string ) {
	if l.li.Mode & Info == Info {
		toWrite := l.prepareString( "[INFO]", CyanColor ) + info
		l.LogString( toWrite )
	}
}
