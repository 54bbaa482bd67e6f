package transactions

import (
	"testing"
	"time"

	"github.com/fintrack-app/fintrack/internal/errors"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		period string
		want   string
	}{
		{"empty defaults to current month", "", "2025-03"},
		{"iso form passes through", "2024-11", "2024-11"},
		{"localized form", "02/2025", "2025-02"},
		{"localized single digit month", "2/2025", "2025-02"},
		{"localized december", "12/2024", "2024-12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolvePeriod(tc.period, now)
			if err != nil {
				t.Fatalf("resolvePeriod(%q): %v", tc.period, err)
			}
			if got != tc.want {
				t.Errorf("resolvePeriod(%q) = %q, want %q", tc.period, got, tc.want)
			}
		})
	}
}

func TestResolvePeriodRejectsBadInput(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		period string
	}{
		{"month thirteen", "13/2025"},
		{"month zero", "00/2025"},
		{"free text", "last month"},
		{"full date", "2025-03-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolvePeriod(tc.period, now)
			if !errors.IsCode(err, errors.CodeBadUserInput) {
				t.Errorf("resolvePeriod(%q): expected BAD_USER_INPUT, got %v", tc.period, err)
			}
		})
	}
}
