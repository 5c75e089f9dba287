package moneyfmt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    decimal.Decimal
		locale   string
		currency string
		contains string
	}{
		{
			name:     "USDollarsInUSLocale",
			value:    decimal.NewFromInt(100),
			locale:   "en-US",
			currency: "USD",
			contains: "$",
		},
		{
			name:     "EurosInPortugueseLocale",
			value:    decimal.RequireFromString("455.23"),
			locale:   "pt-PT",
			currency: "EUR",
			contains: "€",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Amount(tc.value, tc.locale, tc.currency)
			require.NoError(t, err)
			require.Contains(t, got, tc.contains)
		})
	}
}

func TestAmountInvalidInputs(t *testing.T) {
	t.Parallel()

	_, err := Amount(decimal.NewFromInt(1), "not a locale", "USD")
	require.Error(t, err)

	_, err = Amount(decimal.NewFromInt(1), "en-US", "not-a-currency")
	require.Error(t, err)
}

func TestMovementDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2021, time.January, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		ts     time.Time
		locale string
		want   string
	}{
		{
			name:   "SameDay",
			ts:     now.Add(-2 * time.Hour),
			locale: "en-US",
			want:   "Today",
		},
		{
			name:   "OneDayAgo",
			ts:     now.AddDate(0, 0, -1),
			locale: "en-US",
			want:   "Yesterday",
		},
		{
			name:   "FiveDaysAgo",
			ts:     now.AddDate(0, 0, -5),
			locale: "en-US",
			want:   "5 days ago",
		},
		{
			name:   "SevenDaysAgo",
			ts:     now.AddDate(0, 0, -7),
			locale: "en-US",
			want:   "7 days ago",
		},
		{
			name:   "TenDaysAgoUSLocale",
			ts:     now.AddDate(0, 0, -10),
			locale: "en-US",
			want:   "1/5/2021",
		},
		{
			name:   "TenDaysAgoPortugueseLocale",
			ts:     now.AddDate(0, 0, -10),
			locale: "pt-PT",
			want:   "05/01/2021",
		},
		{
			name:   "UnknownLocaleFallsBack",
			ts:     now.AddDate(0, 0, -10),
			locale: "xx-XX",
			want:   "05/01/2021",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MovementDate(tc.ts, tc.locale, now)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCurrentDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2021, time.January, 15, 14, 30, 0, 0, time.UTC)

	require.Equal(t, "1/15/2021, 2:30 PM", CurrentDate(now, "en-US"))
	require.Equal(t, "15/01/2021, 14:30", CurrentDate(now, "pt-PT"))
}
