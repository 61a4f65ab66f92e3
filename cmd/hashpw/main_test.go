package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func stdinFrom(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRun_Piped(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(stdinFrom(t, "art123\n"), &stdout, &stderr, bcrypt.MinCost)

	require.NoError(t, err)
	hash := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("art123")))
	assert.Empty(t, stderr.String())
}

func TestRun_PipedWithoutNewline(t *testing.T) {
	var stdout bytes.Buffer

	err := run(stdinFrom(t, "chess456"), &stdout, &bytes.Buffer{}, bcrypt.MinCost)

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(stdout.String())), []byte("chess456")))
}

func TestRun_EmptyPassword(t *testing.T) {
	err := run(stdinFrom(t, "\n"), &bytes.Buffer{}, &bytes.Buffer{}, bcrypt.MinCost)

	assert.ErrorIs(t, err, errEmptyPassword)
}

func TestRun_Terminal(t *testing.T) {
	origRead, origIsTerminal := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIsTerminal })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("sci789"), nil }

	var stdout, stderr bytes.Buffer
	err := run(stdinFrom(t, ""), &stdout, &stderr, bcrypt.MinCost)

	require.NoError(t, err)
	assert.Equal(t, "Password: \n", stderr.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(stdout.String())), []byte("sci789")))
}

func TestRun_InvalidCost(t *testing.T) {
	err := run(stdinFrom(t, "art123\n"), &bytes.Buffer{}, &bytes.Buffer{}, bcrypt.MaxCost+1)

	assert.Error(t, err)
}
