package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRosterMetrics(reg)

	m.ObserveLogin(ResultSuccess)
	m.ObserveLogin(ResultSuccess)
	m.ObserveLogin(ResultInvalid)
	m.ObserveLogout(3)
	m.ObserveRosterChange(OperationSignup, ResultAlreadyEnrolled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LogoutsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RosterChanges.WithLabelValues(OperationSignup, ResultAlreadyEnrolled)))
}

func TestRosterMetrics_NilIsNoop(t *testing.T) {
	var m *RosterMetrics

	assert.NotPanics(t, func() {
		m.ObserveLogin(ResultSuccess)
		m.ObserveLogout(1)
		m.ObserveRosterChange(OperationUnregister, ResultSuccess)
	})
}

func TestRegisterSessionGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	sessions := 4
	RegisterSessionGauge(reg, func() int { return sessions })

	expected := `
# HELP mergington_auth_active_sessions Number of bearer sessions currently valid.
# TYPE mergington_auth_active_sessions gauge
mergington_auth_active_sessions 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "mergington_auth_active_sessions"))

	sessions = 1
	count, err := testutil.GatherAndCount(reg, "mergington_auth_active_sessions")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/activities", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.POST("/activities/:name/signup", func(c echo.Context) error { return c.NoContent(http.StatusUnauthorized) })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/activities"},
		{http.MethodPost, "/activities/Chess%20Club/signup"},
		{http.MethodPost, "/activities/Art%20Club/signup"},
		{http.MethodGet, "/health/live"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/activities", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "/activities/:name/signup", "401")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	for _, path := range []string{"/wp-login.php", "/.env"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder())
		handler := m.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })
		assert.NoError(t, handler(c))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := NewRegistry()
	NewRosterMetrics(reg).ObserveLogin(ResultSuccess)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mergington_auth_logins_total{result="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
