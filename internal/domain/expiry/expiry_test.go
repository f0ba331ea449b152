package expiry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/activos-ti/internal/domain/expiry"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	date := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	cases := []struct {
		name      string
		expiresAt *time.Time
		want      expiry.Status
	}{
		{"sin fecha", nil, expiry.StatusNoDate},
		{"vencida ayer", date(-1), expiry.StatusExpired},
		{"vencida hace un año", date(-365), expiry.StatusExpired},
		{"vence hoy", date(0), expiry.StatusNearExpiry},
		{"vence mañana", date(1), expiry.StatusNearExpiry},
		{"vence en 30 días (límite)", date(30), expiry.StatusNearExpiry},
		{"vence en 31 días", date(31), expiry.StatusCurrent},
		{"vence en un año", date(365), expiry.StatusCurrent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, expiry.Classify(tc.expiresAt, now))
		})
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, expiry.DaysLeft(now, now))
	assert.Equal(t, 10, expiry.DaysLeft(now.AddDate(0, 0, 10), now))
	assert.Equal(t, -3, expiry.DaysLeft(now.AddDate(0, 0, -3), now))
}
