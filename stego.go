package main
import (
	"os"
	"io"
	"fmt"
	"path/filepath"

	"stegocoder/util"
	"stegocoder/config"
	"stegocoder/cryptography"
	"stegocoder/stegano/img"
	"stegocoder/stegano/codec"
)

const (
	SelfTestSize = 256
)

// swapped in tests
var encodeImage = img.Encode

func encodeFiles( opts *options, conf *config.Config, logger *util.Logger ) error {
	fallback, err := conf.Format()
	if err != nil {
		return err
	}
	// refuse lossy output before doing any work
	outFormat, err := img.OutputFormat( opts.secondImage, fallback )
	if err != nil {
		return err
	}

	source, format, err := img.Load( opts.firstImage )
	if err != nil {
		return err
	}
	util.DebugPrintln( "source image:", opts.firstImage, format, source )
	// the stego grid has the carrier's alpha, so the carrier decides
	if err = img.CheckWritable( source, outFormat ); err != nil {
		return fmt.Errorf("%s: %w", opts.secondImage, err)
	}
	data, err := os.ReadFile( opts.dataFile )
	if err != nil {
		return err
	}
	seed, err := util.NewSeed()
	if err != nil {
		return fmt.Errorf("Failed to generate seed: %w", err)
	}

	enc := codec.NewEncoder( seed )
	if err = enc.LoadSource( source ); err != nil {
		return err
	}
	if err = enc.LoadData( data ); err != nil {
		return err
	}
	stego, err := enc.Output()
	if err != nil {
		return err
	}
	hash := cryptography.Hash( data )
	logger.LogInfo( fmt.Sprintf( "Random Seed: %d", enc.Seed() ) )
	logger.LogInfo( fmt.Sprintf( "Data Length: %d", enc.Length() ) )
	logger.LogInfo( "Data Hash: " + hash )

	encoded, err := encodeImage( stego, outFormat )
	if err != nil {
		return err
	}
	return writeVerified( opts, source, encoded, hash, conf.VerifyAfterEncode )
}

/*
 * the image goes to a temporary file next to the target first. it only
 * replaces the target once it decodes back to the payload.
 */
func writeVerified( opts *options, source *codec.Grid, encoded []byte, hash string, check bool ) error {
	tmp, err := os.CreateTemp( filepath.Dir( opts.secondImage ), ".stego-*" )
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err = tmp.Chmod( 0644 ); err == nil {
		_, err = tmp.Write( encoded )
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && check {
		err = verify( tmpName, source, hash )
	}
	if err == nil {
		err = os.Rename( tmpName, opts.secondImage )
	}
	if err != nil {
		os.Remove( tmpName )
		return err
	}
	return nil
}

// read the written image back and make sure the payload survived
func verify( path string, source *codec.Grid, hash string ) error {
	written, _, err := img.Load( path )
	if err != nil {
		return err
	}
	dec := codec.NewDecoder()
	if err = dec.LoadSource( source ); err != nil {
		return err
	}
	if err = dec.LoadStego( written ); err != nil {
		return err
	}
	data, err := dec.Output()
	if err != nil {
		return err
	}
	if !cryptography.VerifyHash( data, hash ) {
		return fmt.Errorf("%w: written image does not give back the payload", codec.ErrIntegrity)
	}
	util.DebugPrintln( "verified", path )
	return nil
}

func decodeFiles( opts *options, conf *config.Config, logger *util.Logger ) error {
	source, _, err := img.Load( opts.firstImage )
	if err != nil {
		return err
	}
	stego, format, err := img.Load( opts.secondImage )
	if err != nil {
		return err
	}
	if !format.Lossless() {
		logger.LogWarning( fmt.Sprintf( "%s is %s, channel values may have been altered", opts.secondImage, format ) )
	}

	dec := codec.NewDecoder()
	if err = dec.LoadSource( source ); err != nil {
		return err
	}
	if err = dec.LoadStego( stego ); err != nil {
		return err
	}
	data, err := dec.Output()
	if err != nil {
		return err
	}
	logger.LogInfo( fmt.Sprintf( "Random Seed: %d", dec.Seed() ) )
	logger.LogInfo( fmt.Sprintf( "Data Length: %d", dec.Length() ) )
	logger.LogInfo( "Data Hash: " + cryptography.Hash( data ) )

	return os.WriteFile( opts.dataFile, data, 0660 )
}

func selfTest( w io.Writer ) (bool, error) {
	seed, err := util.NewSeed()
	if err != nil {
		return false, err
	}
	in, out, err := img.SelfTest( int64(seed), SelfTestSize, SelfTestSize, img.PNG )
	if err != nil {
		return false, err
	}
	fmt.Fprintln( w, "In  Data Hash: " + cryptography.Hash( in ) )
	fmt.Fprintln( w, "Out Data Hash: " + cryptography.Hash( out ) )
	if img.SelfTestPassed( in, out ) {
		fmt.Fprintln( w, "Encoding successful" )
		return true, nil
	}
	fmt.Fprintln( w, "Encoding failed" )
	return false, nil
}

func readLog( filename string, conf *config.Config ) error {
	password := conf.Logger.Password
	if password == "" && util.IsTerminal( os.Stdin ) {
		pw, err := util.GetPasswd( "Log password (<salt>:<password>, empty if plain): " )
		if err != nil {
			return err
		}
		password = string(pw)
	}
	return util.ReadLog( filename, password )
}
