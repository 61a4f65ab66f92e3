package domain

// Teacher is a staff account allowed to change activity rosters.
// Password holds either the plaintext secret or a bcrypt hash.
type Teacher struct {
	Username string
	Password string
	Name     string
}

// CredentialStore answers login questions against the loaded teacher records.
type CredentialStore interface {
	Lookup(username string) (Teacher, bool)
	Verify(username, password string) (Teacher, error)
}
