package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/mergington/internal/domain"
	apperrors "github.com/pscheid92/mergington/internal/platform/errors"
)

func (s *Server) registerActivityRoutes() {
	s.echo.GET("/activities", s.handleListActivities)
	s.echo.POST("/activities/:name/signup", s.handleSignup, s.requireAuth)
	s.echo.DELETE("/activities/:name/unregister", s.handleUnregister, s.requireAuth)
}

func (s *Server) handleListActivities(c echo.Context) error {
	catalog := s.app.ListActivities(c.Request().Context())
	if err := c.JSON(http.StatusOK, catalog); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSignup(c echo.Context) error {
	name, email, err := rosterParams(c)
	if err != nil {
		return err
	}

	teacher, _ := currentTeacher(c)
	message, err := s.app.Enroll(c.Request().Context(), name, email, teacher)
	if err != nil {
		return rosterError(err, name, email)
	}

	if err := c.JSON(http.StatusOK, messageResponse{Message: message}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUnregister(c echo.Context) error {
	name, email, err := rosterParams(c)
	if err != nil {
		return err
	}

	teacher, _ := currentTeacher(c)
	message, err := s.app.Unenroll(c.Request().Context(), name, email, teacher)
	if err != nil {
		return rosterError(err, name, email)
	}

	if err := c.JSON(http.StatusOK, messageResponse{Message: message}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// rosterParams reads the activity name from the path and the student email
// from the query string. Echo matches on the raw path only when it differs
// from the decoded one (an encoded "/" for instance), so the name is decoded
// exactly once.
func rosterParams(c echo.Context) (string, string, error) {
	name := c.Param("name")
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	email := c.QueryParam("email")
	if err := validation.Validate(strings.TrimSpace(email), validation.Required); err != nil {
		return "", "", apperrors.ValidationError("email is required").WithField("activity", name)
	}

	return name, email, nil
}

func rosterError(err error, name, email string) error {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return apperrors.NotFoundError("Activity not found").WithField("activity", name)
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return apperrors.ValidationError("Student is already signed up").
			WithField("activity", name).
			WithField("email", email)
	case errors.Is(err, domain.ErrNotEnrolled):
		return apperrors.ValidationError("Student is not signed up for this activity").
			WithField("activity", name).
			WithField("email", email)
	default:
		return apperrors.InternalError("failed to update roster", err).WithField("activity", name)
	}
}
