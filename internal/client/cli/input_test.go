package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  ann@example.com \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "-Enter email", &out)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", got)
	require.Equal(t, "-Enter email\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret123", nil)

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "secret123", pw)
	require.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubPassword(t, "", errors.New("boom"))

	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}

// stubPassword replaces the terminal read for the duration of the test.
func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
}
