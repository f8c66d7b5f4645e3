package paystackclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	paystackdomain "github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ListTransactions(ctx context.Context, params ListTransactionsParams) (*paystackdomain.TransactionListResponse, error)
}

type PaystackClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient cria o cliente da API de transações com timeout fixo por chamada
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Paystack.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &PaystackClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.Paystack.URL,
	}
}
