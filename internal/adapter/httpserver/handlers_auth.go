package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/mergington/internal/domain"
	apperrors "github.com/pscheid92/mergington/internal/platform/errors"
)

const contextKeyTeacher = "teacher"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type teacherResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    teacherResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) registerAuthRoutes() {
	s.echo.POST("/auth/login", s.handleLogin)
	s.echo.POST("/auth/logout", s.handleLogout)
	s.echo.GET("/auth/me", s.handleMe, s.resolveTeacher)
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively; anything else yields "".
func bearerToken(c echo.Context) string {
	scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth rejects the request with 401 before the handler runs unless
// the bearer token belongs to a live session.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, err := s.app.RequireTeacher(c.Request().Context(), bearerToken(c))
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return apperrors.UnauthenticatedError("Authentication required")
		}

		c.Set(contextKeyTeacher, username)
		return next(c)
	}
}

// resolveTeacher attaches the teacher to the context when the token is valid
// and lets anonymous requests through untouched.
func (s *Server) resolveTeacher(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if username, ok := s.app.CurrentTeacher(c.Request().Context(), bearerToken(c)); ok {
			c.Set(contextKeyTeacher, username)
		}
		return next(c)
	}
}

func currentTeacher(c echo.Context) (string, bool) {
	username, ok := c.Get(contextKeyTeacher).(string)
	return username, ok && username != ""
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return apperrors.ValidationError("Username and password required")
	}

	session, teacher, err := s.app.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return apperrors.UnauthenticatedError("Invalid credentials").WithField("username", req.Username)
	}
	if err != nil {
		return apperrors.InternalError("failed to create session", err).WithField("username", req.Username)
	}

	response := loginResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    teacherResponse{Username: teacher.Username, Name: teacher.Name},
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleLogout always succeeds; a missing or stale token simply revokes
// nothing.
func (s *Server) handleLogout(c echo.Context) error {
	s.app.Logout(c.Request().Context(), bearerToken(c))

	if err := c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleMe(c echo.Context) error {
	username, ok := currentTeacher(c)
	if !ok {
		return apperrors.UnauthenticatedError("Not authenticated")
	}

	teacher, ok := s.app.Teacher(username)
	if !ok {
		return apperrors.UnauthenticatedError("Not authenticated").WithField("username", username)
	}

	if err := c.JSON(http.StatusOK, teacherResponse{Username: teacher.Username, Name: teacher.Name}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
