package main
import (
	"bytes"
	"errors"
	"flag"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegocoder/config"
	"stegocoder/util"
	"stegocoder/stegano/codec"
	"stegocoder/stegano/img"
)

func carrierGrid( width, height int, opaque bool ) *codec.Grid {
	rnd := rand.New( rand.NewSource( int64(width * height) ) )
	g := codec.NewGrid( width, height )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := uint8(255)
			if !opaque {
				a = uint8(rnd.Intn(256))
			}
			g.Set( x, y, color.NRGBA{
				uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), a,
			})
		}
	}
	return g
}

func writeCarrier( t *testing.T, path string, width, height int ) {
	require.NoError( t, img.Save( path, carrierGrid( width, height, true ), img.PNG ) )
}

// only the expected files, no temporary leftovers
func assertFiles( t *testing.T, dir string, want ...string ) {
	entries, err := os.ReadDir( dir )
	require.NoError( t, err )
	names := []string{}
	for _, e := range entries {
		names = append( names, e.Name() )
	}
	assert.ElementsMatch( t, want, names )
}

// config logging into a file so the test output stays clean
func writeConfig( t *testing.T, dir string ) (string, string) {
	conf := config.Default()
	conf.Logger.Filename = filepath.Join( dir, "stego.log" )
	conf.Logger.IsColored = false
	path := filepath.Join( dir, "config.yaml" )
	require.NoError( t, config.SaveConfig( path, conf ) )
	return path, conf.Logger.Filename
}

func TestParseArgs( t *testing.T ) {
	tests := []struct {
		args	[]string
		ok	bool
	}{
		{ []string{ "--first-image", "a", "--second-image", "b", "--data-file", "c", "--encode" }, true },
		{ []string{ "--first-image", "a", "--second-image", "b", "--data-file", "c", "--decode" }, true },
		{ []string{ "--test" }, true },
		{ []string{ "--read-log", "x.log" }, true },
		{ []string{}, false },
		{ []string{ "--first-image", "a", "--second-image", "b", "--data-file", "c" }, false },
		{ []string{ "--first-image", "a", "--second-image", "b", "--data-file", "c", "--encode", "--decode" }, false },
		{ []string{ "--first-image", "a", "--data-file", "c", "--encode" }, false },
		{ []string{ "--encode" }, false },
		{ []string{ "--test", "--encode" }, false },
		{ []string{ "--unknown" }, false },
		{ []string{ "--test", "extra" }, false },
	}
	for _, test := range tests {
		_, err := parseArgs( test.args )
		if test.ok {
			assert.NoError( t, err, "%v", test.args )
		} else {
			assert.Error( t, err, "%v", test.args )
		}
	}

	_, err := parseArgs( []string{ "--encode" } )
	assert.True( t, errors.Is( err, ErrUsage ) )
	_, err = parseArgs( []string{ "-h" } )
	assert.True( t, errors.Is( err, flag.ErrHelp ) )
}

func TestUsageDoesNoIO( t *testing.T ) {
	dir := t.TempDir()
	out := new(bytes.Buffer)
	second := filepath.Join( dir, "stego.png" )
	code := run( []string{ "--first-image", filepath.Join( dir, "missing.png" ), "--second-image", second, "--encode" }, out, new(bytes.Buffer) )
	assert.Equal( t, 2, code )
	assert.Contains( t, out.String(), "Invalid Arguments" )
	assert.Contains( t, out.String(), "--first-image" )
	entries, err := os.ReadDir( dir )
	require.NoError( t, err )
	assert.Empty( t, entries )
}

func TestEncodeDecodeFiles( t *testing.T ) {
	dir := t.TempDir()
	conf, logFile := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	writeCarrier( t, first, 64, 48 )

	payload := bytes.Repeat( []byte("Hello world! "), 100 )
	dataIn := filepath.Join( dir, "in.bin" )
	require.NoError( t, os.WriteFile( dataIn, payload, 0600 ) )

	for _, name := range []string{ "stego.png", "stego.bmp", "stego.tiff", "stego.qoi" } {
		second := filepath.Join( dir, name )
		dataOut := filepath.Join( dir, name + ".out" )
		out := new(bytes.Buffer)

		code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
			"--data-file", dataIn, "--encode" }, out, out )
		require.Equal( t, 0, code, name )

		code = run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
			"--data-file", dataOut, "--decode" }, out, out )
		require.Equal( t, 0, code, name )

		got, err := os.ReadFile( dataOut )
		require.NoError( t, err )
		assert.Equal( t, payload, got, name )
	}

	logs, err := os.ReadFile( logFile )
	require.NoError( t, err )
	assert.Contains( t, string(logs), "Random Seed: " )
	assert.Contains( t, string(logs), "Data Length: 1300" )
}

func TestEncodeCapacityError( t *testing.T ) {
	dir := t.TempDir()
	conf, logFile := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	writeCarrier( t, first, 10, 10 )
	dataIn := filepath.Join( dir, "in.bin" )
	require.NoError( t, os.WriteFile( dataIn, make( []byte, 80 ), 0600 ) )
	second := filepath.Join( dir, "stego.png" )

	code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
		"--data-file", dataIn, "--encode" }, new(bytes.Buffer), new(bytes.Buffer) )
	assert.Equal( t, 1, code )
	_, err := os.Stat( second )
	assert.True( t, os.IsNotExist( err ) )

	logs, err := os.ReadFile( logFile )
	require.NoError( t, err )
	assert.Contains( t, string(logs), codec.ErrCapacity.Error() )
}

func TestEncodeLossyOutput( t *testing.T ) {
	dir := t.TempDir()
	conf, _ := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	writeCarrier( t, first, 10, 10 )
	dataIn := filepath.Join( dir, "in.bin" )
	require.NoError( t, os.WriteFile( dataIn, []byte("x"), 0600 ) )
	second := filepath.Join( dir, "stego.jpg" )

	code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
		"--data-file", dataIn, "--encode" }, new(bytes.Buffer), new(bytes.Buffer) )
	assert.Equal( t, 1, code )
	_, err := os.Stat( second )
	assert.True( t, os.IsNotExist( err ) )
}

func TestDecodeSizeMismatch( t *testing.T ) {
	dir := t.TempDir()
	conf, logFile := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	second := filepath.Join( dir, "stego.png" )
	writeCarrier( t, first, 10, 10 )
	writeCarrier( t, second, 10, 11 )
	dataOut := filepath.Join( dir, "out.bin" )

	code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
		"--data-file", dataOut, "--decode" }, new(bytes.Buffer), new(bytes.Buffer) )
	assert.Equal( t, 1, code )
	_, err := os.Stat( dataOut )
	assert.True( t, os.IsNotExist( err ) )

	logs, err := os.ReadFile( logFile )
	require.NoError( t, err )
	assert.Contains( t, string(logs), codec.ErrSizeMismatch.Error() )
}

func TestSelfTestCommand( t *testing.T ) {
	out := new(bytes.Buffer)
	assert.Equal( t, 0, run( []string{ "--test" }, out, out ) )
	assert.Contains( t, out.String(), "In  Data Hash: " )
	assert.Contains( t, out.String(), "Encoding successful" )
}

func TestWriteConfigCommand( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "defaults.yaml" )
	assert.Equal( t, 0, run( []string{ "--write-config", path }, new(bytes.Buffer), new(bytes.Buffer) ) )
	conf, err := config.LoadConfig( path )
	require.NoError( t, err )
	assert.Equal( t, string(img.PNG), conf.OutputFormat )
}

func TestTransparentCarrier( t *testing.T ) {
	dir := t.TempDir()
	conf, _ := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	carrier := carrierGrid( 40, 30, false )
	require.NoError( t, img.Save( first, carrier, img.PNG ) )
	dataIn := filepath.Join( dir, "in.bin" )
	payload := bytes.Repeat( []byte{ 0x5a, 0xa5 }, 100 )
	require.NoError( t, os.WriteFile( dataIn, payload, 0600 ) )

	for _, name := range []string{ "stego.png", "stego.tiff" } {
		second := filepath.Join( dir, name )
		dataOut := filepath.Join( dir, name + ".out" )
		code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
			"--data-file", dataIn, "--encode" }, new(bytes.Buffer), new(bytes.Buffer) )
		require.Equal( t, 0, code, name )

		stego, _, err := img.Load( second )
		require.NoError( t, err )
		for y := 0; y < carrier.Height(); y++ {
			for x := 0; x < carrier.Width(); x++ {
				require.Equal( t, carrier.At( x, y ).A, stego.At( x, y ).A, "%s alpha at %d,%d", name, x, y )
			}
		}

		code = run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
			"--data-file", dataOut, "--decode" }, new(bytes.Buffer), new(bytes.Buffer) )
		require.Equal( t, 0, code, name )
		got, err := os.ReadFile( dataOut )
		require.NoError( t, err )
		assert.Equal( t, payload, got, name )
	}

	// bmp drops alpha, qoi premultiplies it
	for _, name := range []string{ "stego.bmp", "stego.qoi" } {
		code := run( []string{ "--config", conf, "--first-image", first, "--second-image",
			filepath.Join( dir, name ), "--data-file", dataIn, "--encode" }, new(bytes.Buffer), new(bytes.Buffer) )
		assert.Equal( t, 1, code, name )
	}
	assertFiles( t, dir, "config.yaml", "stego.log", "carrier.png", "in.bin",
		"stego.png", "stego.png.out", "stego.tiff", "stego.tiff.out" )
}

func TestFailedVerifyLeavesNoImage( t *testing.T ) {
	dir := t.TempDir()
	conf, logFile := writeConfig( t, dir )
	first := filepath.Join( dir, "carrier.png" )
	writeCarrier( t, first, 20, 20 )
	dataIn := filepath.Join( dir, "in.bin" )
	require.NoError( t, os.WriteFile( dataIn, []byte("payload"), 0600 ) )

	// write the untouched carrier instead of the stego grid
	saved := encodeImage
	defer func() { encodeImage = saved }()
	encodeImage = func( _ *codec.Grid, f img.Format ) ([]byte, error) {
		return img.Encode( carrierGrid( 20, 20, true ), f )
	}

	second := filepath.Join( dir, "stego.png" )
	code := run( []string{ "--config", conf, "--first-image", first, "--second-image", second,
		"--data-file", dataIn, "--encode" }, new(bytes.Buffer), new(bytes.Buffer) )
	assert.Equal( t, 1, code )
	assertFiles( t, dir, "config.yaml", "stego.log", "carrier.png", "in.bin" )

	logs, err := os.ReadFile( logFile )
	require.NoError( t, err )
	assert.Contains( t, string(logs), codec.ErrIntegrity.Error() )
}

func TestErrorsReachStderr( t *testing.T ) {
	dir := t.TempDir()
	c := config.Default()
	c.Logger.Mode = util.Info
	conf := filepath.Join( dir, "config.yaml" )
	require.NoError( t, config.SaveConfig( conf, c ) )

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	code := run( []string{ "--config", conf, "--first-image", filepath.Join( dir, "missing.png" ),
		"--second-image", filepath.Join( dir, "stego.png" ), "--data-file", filepath.Join( dir, "in.bin" ),
		"--encode" }, stdout, stderr )
	assert.Equal( t, 1, code )
	assert.Contains( t, stderr.String(), "Error:" )
	assert.Contains( t, stderr.String(), "missing.png" )

	// with the error bit set the logger reports it, once
	c.Logger.Mode = util.Error
	require.NoError( t, config.SaveConfig( conf, c ) )
	stderr.Reset()
	code = run( []string{ "--config", conf, "--first-image", filepath.Join( dir, "missing.png" ),
		"--second-image", filepath.Join( dir, "stego.png" ), "--data-file", filepath.Join( dir, "in.bin" ),
		"--encode" }, stdout, stderr )
	assert.Equal( t, 1, code )
	assert.Contains( t, stderr.String(), "[ERROR]" )
	assert.NotContains( t, stderr.String(), "Error:" )
}
