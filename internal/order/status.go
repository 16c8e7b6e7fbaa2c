package order

// Status is an order's position in its lifecycle. The marketplace API is
// the authority; this type only describes what the views expose. Nothing
// here stops an out-of-band API call from setting an arbitrary status.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Progress maps a status to the percentage shown on the tracking bar.
// Unrecognized statuses render as 10 so a bad value is visible but harmless.
func (s Status) Progress() int {
	switch s {
	case StatusPending:
		return 25
	case StatusConfirmed, StatusProcessing:
		return 50
	case StatusShipped:
		return 75
	case StatusDelivered, StatusCancelled:
		return 100
	default:
		return 10
	}
}

// Step maps a status to its position on the shipment timeline. Cancelled
// sits outside the timeline at -1.
func (s Status) Step() int {
	switch s {
	case StatusConfirmed, StatusProcessing:
		return 1
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	case StatusCancelled:
		return -1
	default:
		return 0
	}
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the advance a seller may perform from s, and whether one
// exists. Pending advances to Shipped and Shipped to Delivered; everything
// else is stuck where it is.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// CanTransition reports whether the views expose a move from one status to
// another: the seller's two advances, plus cancellation out of Pending.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered
	default:
		return false
	}
}
