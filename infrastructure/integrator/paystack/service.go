package paystack

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	paystackdomain "github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/domain"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/paystackclient"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
	"github.com/vfg2006/weekly-growth-advisor/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// SalesDataSource busca a receita da semana corrente e da semana anterior
type SalesDataSource interface {
	FetchRevenueWindow(ctx context.Context) (*domain.RevenueWindow, error)
}

type PaystackService struct {
	cfg    *config.Config
	Client paystackclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client paystackclient.Client) *PaystackService {
	return &PaystackService{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

// WithClock substitui o relógio usado para calcular as janelas semanais
func (s *PaystackService) WithClock(now func() time.Time) *PaystackService {
	s.now = now
	return s
}

// FetchRevenueWindow consulta as duas janelas. Qualquer falha descarta o resultado inteiro.
func (s *PaystackService) FetchRevenueWindow(ctx context.Context) (*domain.RevenueWindow, error) {
	if s.cfg.Paystack.APIKey == "" {
		return nil, domain.NewInsightError(domain.ErrConfiguration, apiErrors.ErrConfiguration, "PAYSTACK_API_KEY not set", nil)
	}

	currentWeek, previousWeek := domain.WeekRanges(s.now().UTC())

	current, err := s.sumRevenue(ctx, "current", currentWeek)
	if err != nil {
		return nil, err
	}

	previous, err := s.sumRevenue(ctx, "previous", previousWeek)
	if err != nil {
		return nil, err
	}

	return &domain.RevenueWindow{
		Current:  current,
		Previous: previous,
	}, nil
}

// sumRevenue percorre todas as páginas da janela e soma os valores em unidades menores
func (s *PaystackService) sumRevenue(ctx context.Context, window string, week domain.WeekRange) (decimal.Decimal, error) {
	params := paystackclient.ListTransactionsParams{
		Status:  paystackdomain.StatusSuccess,
		From:    utils.FormatDate(week.From),
		To:      utils.FormatDate(week.To),
		PerPage: s.cfg.Paystack.PerPage,
		Token:   s.cfg.Paystack.APIKey,
	}

	var total int64
	for page := 1; ; page++ {
		params.Page = page

		resp, err := s.Client.ListTransactions(ctx, params)
		metrics.IncUpstreamRequest(window, err)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"window": window,
				"from":   params.From,
				"to":     params.To,
				"page":   page,
				"error":  err.Error(),
			}).Error("Erro ao buscar transações na Paystack")

			return decimal.Zero, domain.NewInsightError(domain.ErrUpstream, apiErrors.ErrUpstream, window+" week", err)
		}

		total += resp.SumAmount()

		if !resp.HasNextPage(page) {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"window": window,
		"from":   params.From,
		"to":     params.To,
		"amount": total,
	}).Debug("Receita da janela calculada")

	return utils.MinorToMajor(total), nil
}
