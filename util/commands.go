package util
import (
	"os"
	"fmt"
	"strconv"
	"stegocoder/cryptography"
)

// LoadLog returns the plaintext of a log file, decrypting it when needed.
func LoadLog( log, password string ) ([]byte, error) {
	data, err := os.ReadFile( log )
	if err != nil {
		return nil, fmt.Errorf("Failed to read file: %s", err.Error())
	}
	if password != "" {
		sealer, err := cryptography.NewSealer( password )
		if err != nil {
			return nil, fmt.Errorf("Invalid log password: %s", err.Error())
		}
		if logs, err := sealer.Open( data ); err == nil {
			return logs, nil
		}
	}
	// logs are unencrypted?
	// checking for plaintext
	for _, run := range string(data) {
		if strconv.IsPrint( run ) == false && run != '\n' && run != '\033' {
			return nil, fmt.Errorf("Failed to decrypt logs: invalid password.")
		}
	}
	return data, nil
}

// just read the logs and print it to the screen
func ReadLog( log, password string ) error {
	logs, err := LoadLog( log, password )
	if err != nil {
		return err
	}
	fmt.Print( string(logs) )
	return nil
}
