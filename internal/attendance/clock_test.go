package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"Early Morning", day.Add(8 * time.Hour), StatusPresent},
		{"On The Cutoff", day.Add(9*time.Hour + 30*time.Minute), StatusPresent},
		{"One Minute Late", day.Add(9*time.Hour + 31*time.Minute), StatusLate},
		{"Afternoon", day.Add(14 * time.Hour), StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.at))
		})
	}
}
