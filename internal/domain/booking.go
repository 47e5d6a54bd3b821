package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingConfirmed || s == BookingRejected
}

type Booking struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	PropertyID  string        `gorm:"index" json:"property_id"`
	RenterID    string        `gorm:"index" json:"renter_id"`
	OwnerID     string        `gorm:"index" json:"owner_id"`
	Status      BookingStatus `gorm:"index" json:"status"`
	MoveInDate  time.Time     `json:"move_in_date"`
	TotalAmount float64       `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
