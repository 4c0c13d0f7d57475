package budget

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		spend      int64
		amount     int64
		wantPct    float64
		wantStatus Status
	}{
		{"no_spend", 0, 50000, 0, StatusOK},
		{"half_spent", 25000, 50000, 50, StatusOK},
		{"exactly_ninety_percent", 45000, 50000, 90, StatusOK},
		{"just_above_ninety", 45001, 50000, 90.002, StatusWarning},
		{"exactly_at_limit", 50000, 50000, 100, StatusWarning},
		{"just_over_limit", 50001, 50000, 100.002, StatusOver},
		{"well_over_limit", 55000, 50000, 110, StatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, status := Classify(tt.spend, tt.amount)
			if pct != tt.wantPct {
				t.Errorf("expected percentage %v, got %v", tt.wantPct, pct)
			}
			if status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, status)
			}
		})
	}

	t.Run("zero_amount_never_over", func(t *testing.T) {
		for _, spend := range []int64{0, 1, 10000} {
			pct, status := Classify(spend, 0)
			if pct != 0 {
				t.Errorf("expected percentage 0 for zero-amount budget, got %v", pct)
			}
			if status != StatusOK {
				t.Errorf("expected status ok for zero-amount budget, got %s", status)
			}
		}
	})

	t.Run("negative_spend_classifies_ok", func(t *testing.T) {
		pct, status := Classify(-5000, 10000)
		if pct != -50 {
			t.Errorf("expected percentage -50, got %v", pct)
		}
		if status != StatusOK {
			t.Errorf("expected status ok, got %s", status)
		}
	})
}
