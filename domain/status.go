package domain

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderConfirmed: true, OrderCancelled: true},
	OrderConfirmed: {OrderCompleted: true, OrderCancelled: true},
	OrderCompleted: {},
	OrderCancelled: {},
}

// CanTransition reports whether from -> to is an allowed edge. Requesting the
// current status again is not an edge and is rejected.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(validNext[s]) == 0 && s.IsValid()
}

// IsValid reports whether the status is a known lifecycle state.
func (s OrderStatus) IsValid() bool {
	_, ok := validNext[s]
	return ok
}
