package order

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusPrinted},
		{StatusConfirmed, StatusCancelled},
		{StatusPrinted, StatusShipped},
		{StatusPrinted, StatusCancelled},
		{StatusShipped, StatusDelivered},
		{StatusPending, StatusPending}, // idempotent re-apply
	}
	for _, tt := range allowed {
		if !CanTransition(tt.from, tt.to) {
			t.Errorf("%s -> %s should be allowed", tt.from, tt.to)
		}
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusShipped},
		{StatusConfirmed, StatusPending},
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusShipped, StatusCancelled},
		{StatusPending, "bogus"},
	}
	for _, tt := range denied {
		if CanTransition(tt.from, tt.to) {
			t.Errorf("%s -> %s should be denied", tt.from, tt.to)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !IsValidStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if IsValidStatus("processing") {
		t.Error("processing is not a recognized status")
	}
}

func TestStatusMessage(t *testing.T) {
	if got := StatusMessage(StatusConfirmed); got != "Order confirmed! Your NFC card will be printed soon." {
		t.Errorf("confirmed message = %q", got)
	}
	for _, s := range []string{StatusPrinted, StatusShipped, StatusDelivered} {
		if StatusMessage(s) == "Order status updated" {
			t.Errorf("%s should have bespoke wording", s)
		}
	}
	for _, s := range []string{StatusPending, StatusCancelled} {
		if StatusMessage(s) != "Order status updated" {
			t.Errorf("%s should use the generic message", s)
		}
	}
}
