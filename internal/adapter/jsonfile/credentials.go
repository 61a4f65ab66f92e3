package jsonfile

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pscheid92/mergington/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// teachersFile mirrors teachers.json:
//
//	{"teachers": {"mrodriguez": {"password": "art123", "name": "Ms. Rodriguez"}}}
type teachersFile struct {
	Teachers map[string]struct {
		Password string `json:"password"`
		Name     string `json:"name"`
	} `json:"teachers"`
}

// LoadTeachers reads teacher records from path. A missing file yields an
// empty set so the service still starts and rejects every login.
func LoadTeachers(path string) (map[string]domain.Teacher, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Teacher credentials file not found, all logins will be rejected", "path", path)
		return map[string]domain.Teacher{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read teachers file: %w", err)
	}

	var f teachersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse teachers file %s: %w", path, err)
	}

	teachers := make(map[string]domain.Teacher, len(f.Teachers))
	for username, rec := range f.Teachers {
		teachers[username] = domain.Teacher{
			Username: username,
			Password: rec.Password,
			Name:     rec.Name,
		}
	}
	return teachers, nil
}

// CredentialStore is the read-only teacher lookup used by login.
type CredentialStore struct {
	teachers map[string]domain.Teacher
}

func NewCredentialStore(teachers map[string]domain.Teacher) *CredentialStore {
	copied := make(map[string]domain.Teacher, len(teachers))
	for k, v := range teachers {
		copied[k] = v
	}
	return &CredentialStore{teachers: copied}
}

func (s *CredentialStore) Lookup(username string) (domain.Teacher, bool) {
	t, ok := s.teachers[username]
	return t, ok
}

func (s *CredentialStore) Len() int {
	return len(s.teachers)
}

// Verify checks password against the stored secret, which may be plaintext
// or a bcrypt hash.
func (s *CredentialStore) Verify(username, password string) (domain.Teacher, error) {
	t, ok := s.teachers[username]
	if !ok || !passwordMatches(t.Password, password) {
		return domain.Teacher{}, domain.ErrInvalidCredentials
	}
	return t, nil
}

func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
