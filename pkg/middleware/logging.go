package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
	"github.com/vfg2006/weekly-growth-advisor/pkg/log"
)

// CorrelationHeader devolve ao cliente o ID usado nos logs da requisição
const CorrelationHeader = "X-Correlation-ID"

// Cada GET / consulta duas janelas na Paystack, por isso o limite é folgado
const slowRequestThreshold = 3 * time.Second

// Rotas consultadas por probes e pelo Prometheus não são registradas
var quietPaths = map[string]bool{
	"/healthcheck":      true,
	"/internal/metrics": true,
}

// LoggingMiddleware registra o início e o fim de cada requisição com o correlation id
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationHeader, correlationID)

			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			if !log.IsDevelopment() {
				logger.WithFields(log.Fields{
					"remote_addr":    clientIP(r),
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
					"content_length": r.ContentLength,
				}).Info("Requisição iniciada")
			}

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			elapsed := time.Since(start)
			logger = logger.WithFields(log.Fields{
				"status_code": recorder.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			})

			logger.Log(levelFor(recorder.statusCode), fmt.Sprintf("Requisição finalizada em %s", formatDuration(elapsed)))

			if elapsed > slowRequestThreshold {
				logger.Warn("Requisição lenta")
			}
		})
	}
}

func levelFor(status int) logrus.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return logrus.ErrorLevel
	case status >= http.StatusBadRequest:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// statusRecorder captura o status code escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte panics em 500 padronizado e registra a pilha
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					log.ForContext(r.Context()).WithFields(log.Fields{
						"panic_error": err,
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack),
					}).Error("Erro não tratado na aplicação")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal server error", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
