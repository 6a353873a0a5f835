// Package cryptox derives and verifies password hashes.
//
// New hashes are Argon2id encoded as PHC strings:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<digest>
//
// where salt and digest use unpadded standard base64. Every parameter needed
// for verification travels inside the string, so records hashed with older
// parameters keep verifying after the configuration changes. Legacy bcrypt
// records ($2a$, $2b$, $2y$) are accepted by Verify but never produced.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMalformedHash  = errors.New("malformed password hash")
	ErrInvalidParams  = errors.New("invalid argon2 parameters")
	ErrHashingFailed  = errors.New("password hashing failed")
	errUnsupportedAlg = errors.New("unsupported algorithm")
)

// randReader is a test seam for the salt source.
var randReader io.Reader = rand.Reader

const (
	minMemoryKiB   uint32 = 8 * 1024
	minTime        uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
)

// Argon2Params are the tunable Argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns 19 MiB, 2 passes, 1 lane, a 16-byte salt and a
// 32-byte digest.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      19 * 1024,
		Time:        2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p Argon2Params) validate() error {
	switch {
	case p.Memory < minMemoryKiB || p.Memory > maxMemoryKiB:
		return fmt.Errorf("%w: memory must be in [%d, %d] KiB", ErrInvalidParams, minMemoryKiB, maxMemoryKiB)
	case p.Time < minTime || p.Time > maxTime:
		return fmt.Errorf("%w: time must be in [%d, %d]", ErrInvalidParams, minTime, maxTime)
	case p.Parallelism < minParallelism || p.Parallelism > maxParallelism:
		return fmt.Errorf("%w: parallelism must be in [%d, %d]", ErrInvalidParams, minParallelism, maxParallelism)
	case p.SaltLength < minSaltLength:
		return fmt.Errorf("%w: salt length must be >= %d", ErrInvalidParams, minSaltLength)
	case p.KeyLength < minKeyLength || p.KeyLength > maxKeyLength:
		return fmt.Errorf("%w: key length must be in [%d, %d]", ErrInvalidParams, minKeyLength, maxKeyLength)
	}
	return nil
}

// Argon2Hasher hashes with a fixed parameter set and verifies any
// well-formed Argon2id or bcrypt encoding. It is safe for concurrent use.
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) (*Argon2Hasher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Argon2Hasher{params: p}, nil
}

func (h *Argon2Hasher) Params() Argon2Params {
	return h.params
}

// Hash derives a new encoded hash for password using a fresh random salt, so
// two calls with the same password return different strings.
func (h *Argon2Hasher) Hash(password []byte) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return "", fmt.Errorf("%w: reading salt: %v", ErrHashingFailed, err)
	}

	key := argon2.IDKey(password, salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	defer common.WipeByteArray(key)

	return encodePHC(phc{
		memory:      h.params.Memory,
		time:        h.params.Time,
		parallelism: h.params.Parallelism,
		salt:        salt,
		key:         key,
	}), nil
}

// Verify reports whether password matches encoded. A mismatch is (false, nil);
// an error is returned only when encoded cannot be parsed.
func (h *Argon2Hasher) Verify(password []byte, encoded string) (bool, error) {
	if isBcrypt(encoded) {
		return verifyBcrypt(password, encoded)
	}

	parsed, err := parsePHC(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	computed := argon2.IDKey(password, parsed.salt, parsed.time, parsed.memory, parsed.parallelism, uint32(len(parsed.key)))
	defer common.WipeByteArray(computed)

	return subtle.ConstantTimeCompare(computed, parsed.key) == 1, nil
}

func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func verifyBcrypt(password []byte, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

var b64 = base64.RawStdEncoding
