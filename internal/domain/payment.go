package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

type Payment struct {
	ID        string `gorm:"primaryKey" json:"id"`
	BookingID string `gorm:"uniqueIndex" json:"booking_id"` // at most one payment per booking
	RenterID  string `gorm:"index" json:"renter_id"`
	OwnerID   string `gorm:"index" json:"owner_id"`

	Amount        float64       `json:"amount"` // copied from the booking, immutable
	Status        PaymentStatus `gorm:"index" json:"status"`
	PaymentMethod string        `json:"payment_method"` // qr_code|bank_transfer|cash
	QRCodeURL     string        `json:"qr_code_url,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Notes         string        `json:"notes,omitempty"`

	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
