package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/playsignal/quotaledger/pkg/period"
)

func TestCurrent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			now:       time.Date(2025, time.March, 15, 12, 30, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "first instant of month",
			now:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "february non leap year",
			now:       time.Date(2025, time.February, 10, 8, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "february leap year",
			now:       time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "december rolls into january",
			now:       time.Date(2025, time.December, 31, 18, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := period.Current(tt.now)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
		})
	}
}

func TestCurrent_KeepsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2025, time.July, 20, 10, 0, 0, 0, loc)

	p := period.Current(now)
	assert.Equal(t, loc, p.Start.Location())
	assert.Equal(t, loc, p.End.Location())
}

func TestPeriod_Contains(t *testing.T) {
	t.Parallel()

	p := period.Current(time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.True(t, p.Contains(time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(p.Start.Add(-time.Second)))
	assert.False(t, p.Contains(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
}
