package main
import (
	"os"
	"io"
	"fmt"
	"flag"
	"errors"

	"stegocoder/util"
	"stegocoder/config"
)

var ErrUsage = errors.New("invalid arguments")

type options struct {
	firstImage	string
	secondImage	string
	dataFile	string
	encode		bool
	decode		bool
	test		bool
	configFile	string
	readLog		string
	writeConfig	string
}

func main() {
	os.Exit( run( os.Args[1:], os.Stdout, os.Stderr ) )
}

// run returns the process exit code
func run( args []string, stdout, stderr io.Writer ) int {
	opts, err := parseArgs( args )
	if err != nil {
		if errors.Is( err, flag.ErrHelp ) {
			help( stdout )
			return 0
		}
		fmt.Fprintln( stdout, "Invalid Arguments:", err )
		help( stdout )
		return 2
	}

	conf := config.Default()
	if opts.configFile != "" {
		if conf, err = config.LoadConfig( opts.configFile ); err != nil {
			fmt.Fprintln( stdout, "Failed to load configuration:", err )
			return 1
		}
	}
	util.DebugMode = conf.Debug
	if conf.Logger.Filename == "" && !util.IsTerminal( os.Stderr ) {
		conf.Logger.IsColored = false
	}
	logger := util.NewLogger( &conf.Logger )
	logger.SetOutput( stderr )

	switch {
	case opts.writeConfig != "":
		err = config.SaveConfig( opts.writeConfig, conf )
	case opts.readLog != "":
		err = readLog( opts.readLog, conf )
	case opts.test:
		var ok bool
		if ok, err = selfTest( stdout ); err == nil && !ok {
			return 1
		}
	case opts.encode:
		err = encodeFiles( opts, conf, logger )
	case opts.decode:
		err = decodeFiles( opts, conf, logger )
	}
	if err != nil {
		logger.LogError( err )
		// the configured mode may leave errors out, the user still has to see them
		if !logger.Reports( util.Error ) {
			fmt.Fprintln( stderr, "Error:", err )
		}
		return 1
	}
	return 0
}

/*
 * parseArgs never touches the filesystem. every combination it accepts
 * names exactly one action.
 */
func parseArgs( args []string ) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet( "stegocoder", flag.ContinueOnError )
	fs.SetOutput( io.Discard )
	fs.StringVar( &opts.firstImage, "first-image", "", "carrier image" )
	fs.StringVar( &opts.secondImage, "second-image", "", "stego image, written on encode and read on decode" )
	fs.StringVar( &opts.dataFile, "data-file", "", "payload, read on encode and written on decode" )
	fs.BoolVar( &opts.encode, "encode", false, "hide data-file inside first-image, write second-image" )
	fs.BoolVar( &opts.decode, "decode", false, "recover data-file from first-image and second-image" )
	fs.BoolVar( &opts.test, "test", false, "run the codec self test" )
	fs.StringVar( &opts.configFile, "config", "", "YAML configuration file" )
	fs.StringVar( &opts.readLog, "read-log", "", "print a log file" )
	fs.StringVar( &opts.writeConfig, "write-config", "", "write the configuration in use to a file" )

	if err := fs.Parse( args ); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	actions := 0
	for _, set := range []bool{ opts.encode, opts.decode, opts.test, opts.readLog != "", opts.writeConfig != "" } {
		if set {
			actions++
		}
	}
	if actions == 0 {
		return nil, fmt.Errorf("%w: one of --encode or --decode is required", ErrUsage)
	}
	if actions > 1 {
		return nil, fmt.Errorf("%w: only one action may be given", ErrUsage)
	}
	if opts.encode || opts.decode {
		if opts.firstImage == "" || opts.secondImage == "" || opts.dataFile == "" {
			return nil, fmt.Errorf("%w: --first-image, --second-image and --data-file are required", ErrUsage)
		}
	}
	return opts, nil
}

func help( w io.Writer ) {
	line := `Usage: stegocoder --first-image <path> --second-image <path> --data-file <path> (--encode | --decode)

Argument Options:
	--first-image <path>	carrier image
	--second-image <path>	stego image (written on encode, read on decode)
	--data-file <path>	payload (read on encode, written on decode)
	--encode		hide the payload
	--decode		recover the payload
	--test			run the codec self test
	--config <path>		YAML configuration
	--read-log <path>	print a log file, asking for the password if encrypted
	--write-config <path>	write the configuration in use
`
	fmt.Fprintf( w, "%s", line )
}
