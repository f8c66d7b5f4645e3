package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrUnsupportedMetric   = "INS_001" // Métrica não suportada
	ErrTooManyRequests     = "RATE_001"
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrRouteNotFound       = "RES_001" // Rota inexistente
	ErrMethodNotAllowed    = "RES_002"

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrConfiguration  = "CFG_001" // Credencial ou URL ausente
	ErrUpstream       = "UPS_001" // Falha no provedor de transações
	ErrQueueFull      = "QUE_001" // Fila de processamento cheia
	ErrRunInProgress  = "JOB_001" // Execução do job já em andamento
)

var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrUnsupportedMetric:     http.StatusNotFound,
	ErrTooManyRequests:       http.StatusTooManyRequests,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrConfiguration:         http.StatusInternalServerError,
	ErrUpstream:              http.StatusInternalServerError,
	ErrQueueFull:             http.StatusServiceUnavailable,
	ErrRunInProgress:         http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// coder é implementado por erros de domínio que carregam um código de API
type coder interface {
	error
	APICode() string
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeOf extrai o código de API de um erro, usando fallback quando não houver
func CodeOf(err error, fallback string) string {
	var c coder
	if errors.As(err, &c) && c.APICode() != "" {
		return c.APICode()
	}
	return fallback
}
