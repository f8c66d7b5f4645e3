package insighting

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

type Service struct {
	salesSource paystack.SalesDataSource
	now         func() time.Time
}

func NewService(salesSource paystack.SalesDataSource) *Service {
	return &Service{
		salesSource: salesSource,
		now:         time.Now,
	}
}

// WithClock substitui o relógio usado em GeneratedAt
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GenerateInsight busca os dados e classifica. GeneratedAt é obtido uma única vez por chamada.
func (s *Service) GenerateInsight(ctx context.Context) (*domain.BusinessInsight, error) {
	window, err := s.salesSource.FetchRevenueWindow(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error generating insight")
		return nil, err
	}

	insight, err := Classify(window.Current, window.Previous, s.now().UTC())
	if err != nil {
		logrus.WithError(err).Error("Error generating insight")
		return nil, err
	}

	return insight, nil
}
