package order

import "testing"

func TestCalculateOrderTotal(t *testing.T) {
	tests := []struct {
		name          string
		price         float64
		includeLogo   bool
		wantTotal     float64
		wantSurcharge float64
	}{
		{"no logo", 20, false, 20, 0},
		{"with logo", 20, true, 25, 5},
		{"free product with logo", 0, true, 5, 5},
		{"free product no logo", 0, false, 0, 0},
		{"fractional price", 19.99, true, 24.99, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, surcharge := CalculateOrderTotal(tt.price, tt.includeLogo)
			if total != tt.wantTotal {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
			if surcharge != tt.wantSurcharge {
				t.Errorf("surcharge = %v, want %v", surcharge, tt.wantSurcharge)
			}
			if total != tt.price+surcharge {
				t.Errorf("total %v != price %v + surcharge %v", total, tt.price, surcharge)
			}
			if (surcharge == 0) != !tt.includeLogo {
				t.Errorf("surcharge %v inconsistent with includeLogo %v", surcharge, tt.includeLogo)
			}
		})
	}
}

func TestCalculateOrderTotalConfiguredSurcharge(t *testing.T) {
	total, surcharge := calculateOrderTotal(10, true, 7.5)
	if total != 17.5 || surcharge != 7.5 {
		t.Errorf("got total=%v surcharge=%v, want 17.5/7.5", total, surcharge)
	}
}
