package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardintake/internal/billing"
	"cardintake/internal/domain"
)

func TestUnitsForMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"zero minutes", 0, 0},
		{"below threshold", 7, 0},
		{"threshold", 8, 1},
		{"top of first block", 22, 1},
		{"second block start", 23, 2},
		{"top of second block", 37, 2},
		{"third block start", 38, 3},
		{"exact hour", 60, 4},
		{"full day cap", 480, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.UnitsForMinutes(tt.minutes)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitsForMinutes_Invalid(t *testing.T) {
	_, err := billing.UnitsForMinutes(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidMinutes)

	_, err = billing.UnitsForMinutes(481)
	assert.ErrorIs(t, err, domain.ErrInvalidMinutes)
}
