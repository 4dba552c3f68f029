package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewAppError(500, "failed to load rows", cause)

	assert.Equal(t, "failed to load rows: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	noCause := apperrors.NewAppError(503, "unavailable", nil)
	assert.Equal(t, "unavailable", noCause.Error())
}

func TestIsConfigurationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", fmt.Errorf("bad range: %w", apperrors.ErrValidation), true},
		{"report type", fmt.Errorf("x: %w", apperrors.ErrUnknownReportType), true},
		{"rate column", apperrors.ErrUnknownRateColumn, true},
		{"timeframe", apperrors.ErrUnknownTimeframe, true},
		{"period", apperrors.ErrInvalidPeriod, true},
		{"not found", apperrors.ErrNotFound, false},
		{"infrastructure", apperrors.NewAppError(500, "db", errors.New("boom")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.IsConfigurationError(tt.err))
		})
	}
}
