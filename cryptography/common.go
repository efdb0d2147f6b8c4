package cryptography
import (
	"fmt"
	"strings"
	"runtime"
	"crypto/rand"
	"crypto/sha256"
	"crypto/cipher"
	"encoding/hex"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// sha256 of data as upper case hex, the form the data hash is logged in
func Hash( data []byte ) string {
	if data == nil {
		return ""
	}
	sum := sha256.Sum256( data )
	return strings.ToUpper( hex.EncodeToString( sum[:] ) )
}

func VerifyHash( data []byte, hash string ) bool {
	if data == nil || hash == "" {
		return data == nil && hash == ""
	}
	return strings.EqualFold( hash, Hash( data ) )
}

/*
 * Sealer encrypts whole log files. the key is derived from a password
 * written as <base64-salt>:<password>, see NewPassword.
 */
type Sealer struct {
	aead	cipher.AEAD
}

func NewSealer( password string ) (*Sealer, error) {
	salt64, pass, found := strings.Cut( password, ":" )
	if !found {
		return nil, fmt.Errorf("no salt supplied")
	}
	salt, err := base64.StdEncoding.DecodeString( salt64 )
	if err != nil {
		return nil, fmt.Errorf("invalid salt: %w", err)
	}
	key := argon2.IDKey( []byte(pass), salt, argonTime, argonMemory, uint8(runtime.NumCPU()), KeySize )
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	return &Sealer{ aead }, nil
}

// nonce || ciphertext
func(s *Sealer) Seal( plaintext []byte ) ([]byte, error) {
	nonce := make( []byte, s.aead.NonceSize(), s.aead.NonceSize() + len(plaintext) + s.aead.Overhead() )
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}
	return s.aead.Seal( nonce, nonce, plaintext, nil ), nil
}

func(s *Sealer) Open( sealed []byte ) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n + s.aead.Overhead() {
		return nil, fmt.Errorf("sealed data too short")
	}
	return s.aead.Open( nil, sealed[:n], sealed[n:], nil )
}

// NewPassword prefixes password with a fresh random salt.
func NewPassword( password string ) (string, error) {
	salt := make( []byte, SaltSize )
	if _, err := rand.Read( salt ); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString( salt ) + ":" + password, nil
}
