package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MinSecretLength is the shortest signing secret we accept, in bytes.
const MinSecretLength = 32

var ErrSecretTooShort = fmt.Errorf("cryptox: signing secret shorter than %d bytes", MinSecretLength)

// LoadOrCreateSecret reads the token signing secret from file, generating
// and persisting a fresh one (0600) when the file does not exist yet.
// Surrounding whitespace in the file is ignored so hand-edited files work.
func LoadOrCreateSecret(file string) ([]byte, error) {
	file = filepath.Clean(file)

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		secret := []byte(strings.TrimSpace(string(data)))
		if len(secret) < MinSecretLength {
			return nil, ErrSecretTooShort
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	secret, err := GenerateToken(TokenSize512)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(file, []byte(secret), 0600); err != nil {
		return nil, fmt.Errorf("cryptox: write secret: %w", err)
	}

	return []byte(secret), nil
}
