package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/auth"
)

type fakeUserStore struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrInvalidOperation("user already exists")
		}
	}
	if u.ID == "" {
		f.seq++
		u.ID = fmt.Sprintf("usr-%d", f.seq)
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (f *fakeUserStore) ByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound("user not found")
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found")
	}
	for col, v := range fields {
		s := v.(string)
		switch col {
		case "name":
			u.Name = s
		case "phone":
			u.Phone = s
		case "profile_photo_url":
			u.ProfilePhotoURL = s
		case "upi_id":
			u.UPIID = s
		case "qr_code_url":
			u.QRCodeURL = s
		case "bank_account_number":
			u.BankAccountNumber = s
		case "bank_ifsc_code":
			u.BankIFSCCode = s
		case "bank_name":
			u.BankName = s
		}
	}
	return f.ByID(ctx, id)
}

func testAuthSvc() (*AuthSvc, *fakeUserStore) {
	store := newFakeUserStore()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewAuthSvc(store, issuer), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and issues a token", func(t *testing.T) {
		svc, store := testAuthSvc()

		u, token, err := svc.Register(ctx, RegisterInput{
			Email: "Asha@Example.com", Password: "s3cret", Name: "Asha", Role: "owner",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "asha@example.com", u.Email)
		assert.Equal(t, domain.RoleOwner, u.Role)

		stored, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc, _ := testAuthSvc()

		_, _, err := svc.Register(ctx, RegisterInput{
			Email: "a@b.com", Password: "x", Name: "A", Role: "admin",
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		svc, _ := testAuthSvc()

		_, _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "x", Name: "A", Role: "renter"})
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, RegisterInput{Email: "A@B.com", Password: "y", Name: "B", Role: "owner"})
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := testAuthSvc()
	_, _, err := svc.Register(ctx, RegisterInput{Email: "ravi@example.com", Password: "s3cret", Name: "Ravi", Role: "renter"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, token, err := svc.Login(ctx, "ravi@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "Ravi", u.Name)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email read identically", func(t *testing.T) {
		_, _, errPass := svc.Login(ctx, "ravi@example.com", "wrong")
		_, _, errMail := svc.Login(ctx, "nobody@example.com", "s3cret")
		require.Error(t, errPass)
		require.Error(t, errMail)
		assert.Equal(t, errPass.Error(), errMail.Error())
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := testAuthSvc()
	u, _, err := svc.Register(ctx, RegisterInput{
		Email: "asha@example.com", Password: "x", Name: "Asha", Phone: "9876543210", Role: "owner",
	})
	require.NoError(t, err)

	// empty fields leave stored values alone
	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{UPIID: "asha@upi"})
	require.NoError(t, err)
	assert.Equal(t, "asha@upi", updated.UPIID)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, "9876543210", updated.Phone)
}
