package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/mocks"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestGenerateInsight(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSalesDataSource(ctrl)

	now := time.Date(2025, 2, 17, 9, 0, 0, 0, time.FixedZone("WAT", 3600))
	source.EXPECT().
		FetchRevenueWindow(gomock.Any()).
		Return(&domain.RevenueWindow{Current: dec("600"), Previous: dec("300")}, nil)

	service := NewService(source).WithClock(func() time.Time { return now })

	insight, err := service.GenerateInsight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.GrewSignificantly, insight.Classification)
	assert.Equal(t, "Revenue grew significantly by 100.0% this week.", insight.Observation)
	assert.Equal(t, time.UTC, insight.GeneratedAt.Location())
	assert.True(t, now.Equal(insight.GeneratedAt))
}

func TestGenerateInsight_SourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSalesDataSource(ctrl)

	upstreamErr := domain.NewInsightError(domain.ErrUpstream, "UPS_001", "previous week", errors.New("timeout"))
	source.EXPECT().FetchRevenueWindow(gomock.Any()).Return(nil, upstreamErr)

	insight, err := NewService(source).GenerateInsight(context.Background())

	assert.Nil(t, insight)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestGenerateInsight_InvalidRevenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSalesDataSource(ctrl)

	source.EXPECT().
		FetchRevenueWindow(gomock.Any()).
		Return(&domain.RevenueWindow{Current: dec("-5"), Previous: dec("10")}, nil)

	_, err := NewService(source).GenerateInsight(context.Background())

	assert.True(t, errors.Is(err, domain.ErrInvalidRevenue))
}
