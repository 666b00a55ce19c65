package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Configuration for Argon2id hashing.
const (
	DefaultArgon2Memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	DefaultArgon2Iterations  = 2         // Iteration count
	DefaultArgon2Parallelism = 1         // Number of threads

	keyLength  = 32 // Length of the generated hash
	saltLength = 16 // Length of the salt
)

// DefaultBcryptCost matches the work factor the service has always used.
const DefaultBcryptCost = 10

// MaxBcryptPasswordBytes is the longest input bcrypt accepts.
const MaxBcryptPasswordBytes = 72

var (
	ErrEmptyPassword    = errors.New("cryptox: empty password")
	ErrPasswordTooLong  = fmt.Errorf("cryptox: password longer than %d bytes", MaxBcryptPasswordBytes)
	ErrUnknownAlgorithm = errors.New("cryptox: unknown password algorithm")
)

// Hasher produces salted one-way password hashes and checks passwords
// against them. Verify never fails loudly: a malformed hash simply doesn't
// match.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// NewHasher returns the hasher for the named algorithm. A zero cost picks
// the package default.
func NewHasher(algorithm string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		if bcryptCost == 0 {
			bcryptCost = DefaultBcryptCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("cryptox: bcrypt cost %d out of range [%d, %d]",
				bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: bcryptCost}, nil
	case AlgorithmArgon2id:
		return NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// BcryptHasher hashes with bcrypt at a fixed cost. The salt is generated and
// embedded by bcrypt itself.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxBcryptPasswordBytes {
		return "", ErrPasswordTooLong
	}
	cost := h.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify works against a bcrypt hash of any cost.
func (h BcryptHasher) Verify(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

// Argon2idHasher hashes into the PHC string format.
type Argon2idHasher struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

func NewArgon2idHasher() Argon2idHasher {
	return Argon2idHasher{
		Memory:      DefaultArgon2Memory,
		Iterations:  DefaultArgon2Iterations,
		Parallelism: DefaultArgon2Parallelism,
	}
}

// Hash generates a PHC-format Argon2id hash string including salt and parameters.
func (h Argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.Iterations,
		h.Memory,
		h.Parallelism,
		keyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	// Return PHC-style encoded string
	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		h.Memory,
		h.Iterations,
		h.Parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// Verify recomputes the hash with the parameters and salt embedded in
// encoded, so it is independent of the receiver's own parameters.
func (h Argon2idHasher) Verify(password, encoded string) bool {
	return verifyArgon2id(password, encoded) == nil
}

func verifyArgon2id(password, encodedHash string) error {
	// Validate structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par)
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}
	if mem == 0 || iters == 0 || par == 0 {
		return errors.New("invalid hash format: zero parameter")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}
	if len(expectedHash) == 0 {
		return errors.New("invalid hash format: empty hash")
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - If this overflows we have bigger problems
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return errors.New("password does not match")
}

// VerifyPassword checks password against a stored hash produced by any of
// the supported algorithms, picking the algorithm from the hash prefix.
func VerifyPassword(password, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2id(password, encoded) == nil
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return BcryptHasher{}.Verify(password, encoded)
	default:
		return false
	}
}
