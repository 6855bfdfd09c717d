package order

import "strings"

// Order lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPrinted   = "printed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses lists every recognized status in lifecycle order.
var Statuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPrinted,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// statusTransitions is the explicit transition table keyed by current
// status. Delivered and cancelled are terminal.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPrinted, StatusCancelled},
	StatusPrinted:   {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Re-applying the current status is a permitted no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return IsValidStatus(to)
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusMessage returns the customer-facing wording for a status
// change.
func StatusMessage(status string) string {
	switch status {
	case StatusConfirmed:
		return "Order confirmed! Your NFC card will be printed soon."
	case StatusPrinted:
		return "Your NFC card has been printed and will be shipped soon."
	case StatusShipped:
		return "Your order is on its way!"
	case StatusDelivered:
		return "Your order has been delivered. Enjoy your NFC card!"
	default:
		return "Order status updated"
	}
}

// ValidStatusList is used in validation messages.
func ValidStatusList() string {
	return strings.Join(Statuses, ", ")
}
