package finance

import (
	"errors"
	"testing"
)

func mustSubscription(t *testing.T, amount Money, frequency Frequency, anchor int, created Date) Subscription {
	t.Helper()
	s, err := NewSubscription("Netflix", amount, "acc-1", frequency, anchor, created)
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}
	return s
}

func TestSubscription_DueDates(t *testing.T) {
	testCases := []struct {
		name          string
		frequency     Frequency
		anchor        int
		created       Date
		lastGenerated Date
		paused        bool
		now           Date
		want          []Date
	}{
		{
			name:      "backfill of missed monthly cycles",
			frequency: Monthly,
			anchor:    15,
			created:   MustDate("2024-01-01"),
			now:       MustDate("2024-04-20"),
			want:      []Date{MustDate("2024-01-15"), MustDate("2024-02-15"), MustDate("2024-03-15"), MustDate("2024-04-15")},
		},
		{
			name:      "anchor clamps in february and recovers in march",
			frequency: Monthly,
			anchor:    31,
			created:   MustDate("2024-01-31"),
			now:       MustDate("2024-03-31"),
			want:      []Date{MustDate("2024-01-31"), MustDate("2024-02-29"), MustDate("2024-03-31")},
		},
		{
			name:      "creation after the anchor day skips to next month",
			frequency: Monthly,
			anchor:    15,
			created:   MustDate("2024-01-20"),
			now:       MustDate("2024-02-20"),
			want:      []Date{MustDate("2024-02-15")},
		},
		{
			name:          "checkpoint suppresses consumed cycles",
			frequency:     Monthly,
			anchor:        15,
			created:       MustDate("2024-01-01"),
			lastGenerated: MustDate("2024-02-15"),
			now:           MustDate("2024-04-20"),
			want:          []Date{MustDate("2024-03-15"), MustDate("2024-04-15")},
		},
		{
			name:      "nothing due before the first cycle",
			frequency: Monthly,
			anchor:    15,
			created:   MustDate("2024-01-01"),
			now:       MustDate("2024-01-14"),
			want:      nil,
		},
		{
			name:      "quarterly",
			frequency: Quarterly,
			anchor:    1,
			created:   MustDate("2024-01-01"),
			now:       MustDate("2024-07-01"),
			want:      []Date{MustDate("2024-01-01"), MustDate("2024-04-01"), MustDate("2024-07-01")},
		},
		{
			name:      "yearly",
			frequency: Yearly,
			anchor:    10,
			created:   MustDate("2024-03-10"),
			now:       MustDate("2026-03-10"),
			want:      []Date{MustDate("2024-03-10"), MustDate("2025-03-10"), MustDate("2026-03-10")},
		},
		{
			name:      "paused subscriptions are never due",
			frequency: Monthly,
			anchor:    15,
			created:   MustDate("2024-01-01"),
			paused:    true,
			now:       MustDate("2024-04-20"),
			want:      nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustSubscription(t, CHF(1990), tc.frequency, tc.anchor, tc.created)
			s.LastGenerated = tc.lastGenerated
			if tc.paused {
				s.Status = SubscriptionPaused
			}
			got := s.DueDates(tc.now)
			if len(got) != len(tc.want) {
				t.Fatalf("DueDates(%s) = %v, want %v", tc.now, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("DueDates(%s)[%d] = %s, want %s", tc.now, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestNewSubscription_Validation(t *testing.T) {
	if _, err := NewSubscription("X", CHF(-100), "acc-1", Monthly, 1, MustDate("2024-01-01")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount error = %v, want ErrInvalidAmount", err)
	}
	if _, err := NewSubscription("X", CHF(100), "acc-1", Monthly, 0, MustDate("2024-01-01")); err == nil {
		t.Error("anchor 0 accepted, want error")
	}
	if _, err := NewSubscription("X", CHF(100), "acc-1", Monthly, 32, MustDate("2024-01-01")); err == nil {
		t.Error("anchor 32 accepted, want error")
	}
}

func TestSubscription_PendingCharge(t *testing.T) {
	s := mustSubscription(t, CHF(1990), Monthly, 15, MustDate("2024-01-01"))
	tx := s.pendingCharge(MustDate("2024-02-15"))

	if !tx.Amount.Equal(CHF(-1990)) {
		t.Errorf("charge amount = %v, want %v", tx.Amount, CHF(-1990))
	}
	if tx.Status != StatusPending {
		t.Errorf("charge status = %s, want pending", tx.Status)
	}
	if tx.Origin != OriginSubscription || tx.OriginRef != s.ID {
		t.Errorf("charge origin = %s/%s, want subscription/%s", tx.Origin, tx.OriginRef, s.ID)
	}
	if tx.Date != MustDate("2024-02-15") {
		t.Errorf("charge date = %s, want 2024-02-15", tx.Date)
	}
}
