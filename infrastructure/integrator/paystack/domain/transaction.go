package paystackdomain

// Transaction representa um registro retornado por GET /transaction.
// Amount está em unidades menores da moeda (kobo, centavos).
type Transaction struct {
	ID        int64  `json:"id,omitempty"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency,omitempty"`
	PaidAt    string `json:"paid_at,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Meta struct {
	Total     int `json:"total"`
	Skipped   int `json:"skipped"`
	PerPage   int `json:"perPage"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

type TransactionListResponse struct {
	Status  bool          `json:"status"`
	Message string        `json:"message,omitempty"`
	Data    []Transaction `json:"data"`
	Meta    *Meta         `json:"meta,omitempty"`
}

const StatusSuccess = "success"

// SumAmount soma o valor de todas as transações da página
func (r *TransactionListResponse) SumAmount() int64 {
	var total int64
	for _, txn := range r.Data {
		total += txn.Amount
	}
	return total
}

// HasNextPage indica se o provedor informou mais páginas após a atual
func (r *TransactionListResponse) HasNextPage(page int) bool {
	return r.Meta != nil && r.Meta.PageCount > page
}
