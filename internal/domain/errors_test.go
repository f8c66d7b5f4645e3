package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsightError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInsightError(ErrUpstream, "UPS_001", "current week", cause)

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, "upstream error: current week: connection refused", err.Error())

	var insightErr *InsightError
	assert.True(t, errors.As(error(err), &insightErr))
	assert.Equal(t, "UPS_001", insightErr.Code)
}
