package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/auth"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
}

type AuthSvc struct {
	repo   UserStore
	issuer *auth.Issuer
}

func NewAuthSvc(repo UserStore, issuer *auth.Issuer) *AuthSvc {
	return &AuthSvc{repo: repo, issuer: issuer}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (s *AuthSvc) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, "", domain.ErrInvalidInput("email, password and name are required")
	}
	role := domain.Role(in.Role)
	if role != domain.RoleRenter && role != domain.RoleOwner {
		return nil, "", domain.ErrInvalidInput("role must be renter or owner")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.issuer.CreateAccessToken(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and wrong password.
		return nil, "", domain.ErrInvalidInput("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidInput("invalid email or password")
	}
	token, err := s.issuer.CreateAccessToken(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthSvc) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.ByID(ctx, userID)
}

type ProfileUpdate struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	ProfilePhotoURL   string `json:"profile_photo_url"`
	UPIID             string `json:"upi_id"`
	QRCodeURL         string `json:"qr_code_url"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSCCode      string `json:"bank_ifsc_code"`
	BankName          string `json:"bank_name"`
}

// UpdateProfile applies the fields that were provided; empty strings leave
// the stored value unchanged.
func (s *AuthSvc) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	set := func(col, val string) {
		if val != "" {
			fields[col] = val
		}
	}
	set("name", in.Name)
	set("phone", in.Phone)
	set("profile_photo_url", in.ProfilePhotoURL)
	set("upi_id", in.UPIID)
	set("qr_code_url", in.QRCodeURL)
	set("bank_account_number", in.BankAccountNumber)
	set("bank_ifsc_code", in.BankIFSCCode)
	set("bank_name", in.BankName)
	return s.repo.UpdateFields(ctx, userID, fields)
}
