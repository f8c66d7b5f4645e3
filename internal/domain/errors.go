package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do pipeline de insights
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrUpstream          = errors.New("upstream error")
	ErrDeliveryFailed    = errors.New("delivery failed")
	ErrRegistration      = errors.New("job registration failed")
	ErrInvalidRevenue    = errors.New("invalid revenue value")
	ErrUnsupportedMetric = errors.New("metric not supported")
	ErrQueueFull         = errors.New("tick queue full")
	ErrSchedulerStopped  = errors.New("scheduler stopped")
)

// InsightError é um erro com contexto adicional para o pipeline
type InsightError struct {
	Err     error  // Erro base da taxonomia
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error  // Erro de origem
}

func (e *InsightError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap permite errors.Is tanto contra a taxonomia quanto contra a causa
func (e *InsightError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// APICode expõe o código para a camada HTTP
func (e *InsightError) APICode() string {
	return e.Code
}

func NewInsightError(err error, code string, details string, cause error) *InsightError {
	return &InsightError{
		Err:     err,
		Code:    code,
		Details: details,
		Cause:   cause,
	}
}
