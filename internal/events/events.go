package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys on the rental topic exchange.
const (
	RKBookingRequested = "booking.requested"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingRejected  = "booking.rejected"

	RKPaymentCreated   = "payment.created"
	RKPaymentCompleted = "payment.completed"
)

type BookingRequested struct {
	BookingID  string  `json:"booking_id"`
	PropertyID string  `json:"property_id"`
	RenterID   string  `json:"renter_id"`
	OwnerID    string  `json:"owner_id"`
	Amount     float64 `json:"amount"`
	MoveIn     int64   `json:"move_in"` // unix seconds
}

type BookingDecided struct {
	BookingID  string `json:"booking_id"`
	PropertyID string `json:"property_id"`
	Status     string `json:"status"`
}

type PaymentCreated struct {
	PaymentID string  `json:"payment_id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

type PaymentCompleted struct {
	PaymentID     string  `json:"payment_id"`
	BookingID     string  `json:"booking_id"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
