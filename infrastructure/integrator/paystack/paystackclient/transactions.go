package paystackclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"
	paystackdomain "github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/domain"
)

type ListTransactionsParams struct {
	Status  string
	From    string
	To      string
	Page    int
	PerPage int
	Token   string
}

// StatusError é retornado quando o provedor responde com status fora da faixa 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "requisição falhou com status " + strconv.Itoa(e.StatusCode) + ": " + e.Body
}

func (c *PaystackClient) ListTransactions(ctx context.Context, params ListTransactionsParams) (*paystackdomain.TransactionListResponse, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, "/transaction")

	query := endpoint.Query()
	query.Set("status", params.Status)
	query.Set("from", params.From)
	query.Set("to", params.To)
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("perPage", strconv.Itoa(params.PerPage))
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+params.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	var response paystackdomain.TransactionListResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return &response, nil
}
