package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/mergington/internal/domain"
	"github.com/pscheid92/mergington/internal/platform/config"
)

// --- Mock implementations ---

type mockAppService struct {
	loginFn          func(ctx context.Context, username, password string) (domain.Session, domain.Teacher, error)
	logoutFn         func(ctx context.Context, token string) int
	currentTeacherFn func(ctx context.Context, token string) (string, bool)
	teacherFn        func(username string) (domain.Teacher, bool)
	listFn           func(ctx context.Context) domain.Catalog
	enrollFn         func(ctx context.Context, name, email, actingUser string) (string, error)
	unenrollFn       func(ctx context.Context, name, email, actingUser string) (string, error)
}

func (m *mockAppService) Login(ctx context.Context, username, password string) (domain.Session, domain.Teacher, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return domain.Session{}, domain.Teacher{}, domain.ErrInvalidCredentials
}

func (m *mockAppService) Logout(ctx context.Context, token string) int {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return 0
}

func (m *mockAppService) CurrentTeacher(ctx context.Context, token string) (string, bool) {
	if m.currentTeacherFn != nil {
		return m.currentTeacherFn(ctx, token)
	}
	return "", false
}

func (m *mockAppService) RequireTeacher(ctx context.Context, token string) (string, error) {
	username, ok := m.CurrentTeacher(ctx, token)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}

func (m *mockAppService) Teacher(username string) (domain.Teacher, bool) {
	if m.teacherFn != nil {
		return m.teacherFn(username)
	}
	return domain.Teacher{}, false
}

func (m *mockAppService) ListActivities(ctx context.Context) domain.Catalog {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return domain.NewCatalog(nil)
}

func (m *mockAppService) Enroll(ctx context.Context, name, email, actingUser string) (string, error) {
	if m.enrollFn != nil {
		return m.enrollFn(ctx, name, email, actingUser)
	}
	return "", errors.New("not implemented")
}

func (m *mockAppService) Unenroll(ctx context.Context, name, email, actingUser string) (string, error) {
	if m.unenrollFn != nil {
		return m.unenrollFn(ctx, name, email, actingUser)
	}
	return "", errors.New("not implemented")
}

// withSession makes token resolve to username.
func withSession(token, username string) func(ctx context.Context, token string) (string, bool) {
	return func(_ context.Context, got string) (string, bool) {
		if got == token {
			return username, true
		}
		return "", false
	}
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	srv := &Server{
		echo:   echo.New(),
		config: &config.Config{Port: "8000"},
		app:    app,
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}

// serve sends a request through the full router.
func serve(srv *Server, method, target string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}
