package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func queryContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPeriodFromQuery_DefaultsToCurrentMonth(t *testing.T) {
	from, to, err := periodFromQuery(queryContext("/v1/exports/payments"))
	assert.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, from.AddDate(0, 1, 0), to)
}

func TestPeriodFromQuery_ParsesExplicitRange(t *testing.T) {
	from, to, err := periodFromQuery(queryContext("/v1/exports/payments?from=2026-03-01&to=2026-04-01"))
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodFromQuery_RejectsMalformedDates(t *testing.T) {
	_, _, err := periodFromQuery(queryContext("/v1/exports/payments?from=03%2F01%2F2026"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, _, err = periodFromQuery(queryContext("/v1/exports/payments?to=yesterday"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestPeriodFromQuery_RejectsInvertedRange(t *testing.T) {
	_, _, err := periodFromQuery(queryContext("/v1/exports/payments?from=2026-04-01&to=2026-03-01"))
	assert.Error(t, err)
}
