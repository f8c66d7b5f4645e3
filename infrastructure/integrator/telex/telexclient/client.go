package telexclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Post(ctx context.Context, url string, payload any) error
}

type TelexClient struct {
	httpClient *http.Client
}

// NewClient cria o cliente de webhook com timeout fixo por tentativa
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Delivery.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TelexClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post envia o payload como JSON. Respostas fora da faixa 2xx são tratadas como erro.
func (c *TelexClient) Post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar o payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("webhook respondeu com status %d: %s", resp.StatusCode, respBody)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
