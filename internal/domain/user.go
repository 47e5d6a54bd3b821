package domain

import "time"

type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Role         Role   `gorm:"index" json:"role"` // renter|owner

	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`

	// Payment credentials shown to renters when a booking is confirmed.
	UPIID             string `gorm:"column:upi_id" json:"upi_id,omitempty"`
	QRCodeURL         string `json:"qr_code_url,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankIFSCCode      string `json:"bank_ifsc_code,omitempty"`
	BankName          string `json:"bank_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRef is the trimmed user form embedded in enriched responses.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) Ref() UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
