package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default params for Argon2id
const (
	argonMemory  = 64 * 1024 // 64 MB
	argonTime    = 1
	argonThreads = 4
	saltLen      = 16
	keyLen       = 32
)

// ErrInvalidHash is returned when a stored hash is not an argon2id PHC string.
var ErrInvalidHash = errors.New("invalid hash format")

// dummyHash is verified against when a login names an unknown email, so both
// failure paths spend the same time in argon2.
var dummyHash = mustHash("gavel-timing-equaliser")

// HashPassword hashes a password using Argon2id.
// Format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword compares a password with an Argon2id hash in constant time.
func VerifyPassword(encodedHash, password string) (bool, error) {
	p, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(p.key, candidate) == 1, nil
}

// BurnVerification performs a throwaway verification. The result is always false.
func BurnVerification(password string) {
	_, _ = VerifyPassword(dummyHash, password)
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodeHash(encodedHash string) (*argonParams, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: incompatible argon2 version %d", ErrInvalidHash, version)
	}

	p := &argonParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(p.key) == 0 {
		return nil, ErrInvalidHash
	}
	return p, nil
}

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	return h
}
