package telex

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex/telexclient"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Notifier entrega um insight a um destino de webhook
type Notifier interface {
	Deliver(ctx context.Context, insight *domain.BusinessInsight, destination domain.Destination) error
}

// Sleeper aguarda d ou até o contexto ser cancelado
type Sleeper func(ctx context.Context, d time.Duration) error

type TelexService struct {
	Client      telexclient.Client
	maxAttempts int
	retryDelay  time.Duration
	sleep       Sleeper
}

func New(cfg *config.Config, client telexclient.Client) *TelexService {
	maxAttempts := cfg.Delivery.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &TelexService{
		Client:      client,
		maxAttempts: maxAttempts,
		retryDelay:  cfg.Delivery.RetryDelay,
		sleep:       contextSleep,
	}
}

// WithSleeper substitui a espera entre tentativas
func (s *TelexService) WithSleeper(sleep Sleeper) *TelexService {
	s.sleep = sleep
	return s
}

// Deliver tenta o envio até maxAttempts vezes com intervalo fixo entre tentativas.
// Sucesso em qualquer tentativa encerra as retentativas.
func (s *TelexService) Deliver(ctx context.Context, insight *domain.BusinessInsight, destination domain.Destination) error {
	if destination.URL == "" {
		return domain.NewInsightError(domain.ErrConfiguration, apiErrors.ErrConfiguration, "webhook URL not set for "+destination.Name, nil)
	}

	payload, err := BuildPayload(insight, destination.Shape)
	if err != nil {
		return domain.NewInsightError(domain.ErrDeliveryFailed, "", destination.Name, err)
	}

	logger := logrus.WithFields(logrus.Fields{
		"destination": destination.Name,
		"shape":       destination.Shape,
	})

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attempts = attempt

		lastErr = s.Client.Post(ctx, destination.URL, payload)
		metrics.IncDeliveryAttempt(destination.Name, lastErr)
		if lastErr == nil {
			metrics.IncDelivery(destination.Name, nil)
			logger.WithField("attempt", attempt).Info("Successfully sent insight to Telex")
			return nil
		}

		if attempt == s.maxAttempts {
			break
		}

		logger.WithError(lastErr).Warnf("Attempt %d failed. Retrying in %s...", attempt, s.retryDelay)

		if err := s.sleep(ctx, s.retryDelay); err != nil {
			logger.WithError(err).Warn("Espera entre tentativas interrompida")
			break
		}
	}

	metrics.IncDelivery(destination.Name, lastErr)

	return domain.NewInsightError(domain.ErrDeliveryFailed, "", fmt.Sprintf("%s after %d attempts", destination.Name, attempts), lastErr)
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
