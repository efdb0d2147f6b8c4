package cryptography
import (
	"crypto/sha256"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	KeySize = chacha20poly1305.KeySize
	SaltSize = 16
	HashSize = sha256.Size

	// argon2id parameters for log passwords
	argonTime = 3
	argonMemory = 32 * 1024
)
