package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in        string
		limit     int64
		period    time.Duration
		perSecond float64
	}{
		{"5-S", 5, time.Second, 5},
		{"120-m", 120, time.Minute, 2},
		{"3600-H", 3600, time.Hour, 1},
		{"86400-D", 86400, 24 * time.Hour, 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rate, err := ParseLimit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.limit, rate.Limit)
			assert.Equal(t, tt.period, rate.Period)
			assert.InDelta(t, tt.perSecond, PerSecond(rate), 1e-9)
		})
	}
}

func TestParseLimit_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "10/M", "10-Y"} {
		_, err := ParseLimit(in)
		assert.Error(t, err, in)
	}
}

func TestRouteToKeyString(t *testing.T) {
	assert.Equal(t, "-v1-ags-payments-_id", routeToKeyString("/v1/ags-payments/:id"))
}
