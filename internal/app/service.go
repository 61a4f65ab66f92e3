package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pscheid92/mergington/internal/adapter/metrics"
	"github.com/pscheid92/mergington/internal/domain"
)

// Service is the only component that references more than one repository.
type Service struct {
	credentials domain.CredentialStore
	sessions    domain.SessionRepository
	activities  domain.ActivityRepository
	metrics     *metrics.RosterMetrics
}

// NewService creates the application layer service. m may be nil.
func NewService(credentials domain.CredentialStore, sessions domain.SessionRepository, activities domain.ActivityRepository, m *metrics.RosterMetrics) *Service {
	return &Service{
		credentials: credentials,
		sessions:    sessions,
		activities:  activities,
		metrics:     m,
	}
}

// Login verifies the teacher's password and opens a new session. Earlier
// sessions of the same teacher stay valid.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, domain.Teacher, error) {
	teacher, err := s.credentials.Verify(username, password)
	if err != nil {
		s.metrics.ObserveLogin(metrics.ResultInvalid)
		return domain.Session{}, domain.Teacher{}, err
	}

	session, err := s.sessions.Create(ctx, teacher.Username)
	if err != nil {
		s.metrics.ObserveLogin(metrics.ResultError)
		return domain.Session{}, domain.Teacher{}, fmt.Errorf("create session: %w", err)
	}

	s.metrics.ObserveLogin(metrics.ResultSuccess)
	slog.InfoContext(ctx, "Teacher logged in", "username", teacher.Username)
	return session, teacher, nil
}

// Logout revokes every session of the teacher owning token. An unknown or
// empty token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) int {
	username, ok := s.CurrentTeacher(ctx, token)
	if !ok {
		return 0
	}

	revoked := s.sessions.RevokeAllForUser(ctx, username)
	s.metrics.ObserveLogout(revoked)
	slog.InfoContext(ctx, "Teacher logged out", "username", username, "sessions_revoked", revoked)
	return revoked
}

// CurrentTeacher resolves a bearer token to a username.
func (s *Service) CurrentTeacher(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.sessions.Resolve(ctx, token)
}

// RequireTeacher is CurrentTeacher that fails with domain.ErrUnauthenticated.
func (s *Service) RequireTeacher(ctx context.Context, token string) (string, error) {
	username, ok := s.CurrentTeacher(ctx, token)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}

// Teacher returns the profile of a loaded teacher.
func (s *Service) Teacher(username string) (domain.Teacher, bool) {
	return s.credentials.Lookup(username)
}

func (s *Service) ListActivities(ctx context.Context) domain.Catalog {
	return s.activities.List(ctx)
}

// Enroll signs email up for activity name on behalf of actingUser, who must
// already be authenticated. It returns the confirmation message.
func (s *Service) Enroll(ctx context.Context, name, email, actingUser string) (string, error) {
	err := s.activities.Enroll(ctx, name, email)
	s.metrics.ObserveRosterChange(metrics.OperationSignup, rosterResult(err))
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Student signed up", "activity", name, "email", email, "teacher", actingUser)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unenroll removes email from activity name on behalf of actingUser.
func (s *Service) Unenroll(ctx context.Context, name, email, actingUser string) (string, error) {
	err := s.activities.Unenroll(ctx, name, email)
	s.metrics.ObserveRosterChange(metrics.OperationUnregister, rosterResult(err))
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Student unregistered", "activity", name, "email", email, "teacher", actingUser)
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

func rosterResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return metrics.ResultAlreadyEnrolled
	case errors.Is(err, domain.ErrNotEnrolled):
		return metrics.ResultNotEnrolled
	default:
		return metrics.ResultError
	}
}
