package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/weekly-growth-advisor/pkg/log"
)

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	})
	handler := LoggingMiddleware()(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(CorrelationHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(CorrelationHeader, "req-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(CorrelationHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"SRV_001","message":"Internal server error"}`, rec.Body.String())
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, levelFor(http.StatusAccepted))
	assert.Equal(t, logrus.WarnLevel, levelFor(http.StatusNotFound))
	assert.Equal(t, logrus.ErrorLevel, levelFor(http.StatusBadGateway))
}

func TestCors(t *testing.T) {
	nextCalls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalls++ })
	handler := Cors()(next)

	req := httptest.NewRequest(http.MethodOptions, "/tick", nil)
	req.Header.Set("Origin", "https://telex.im")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://telex.im", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 0, nextCalls)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 1, nextCalls)
}
