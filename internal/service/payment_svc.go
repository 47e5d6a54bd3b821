package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
)

type PaymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	ByID(ctx context.Context, id string) (*domain.Payment, error)
	ByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Payment, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Payment, error)
}

// ArtifactRenderer is the opaque external QR service.
type ArtifactRenderer interface {
	PaymentArtifactURL(upiID string, amount float64, payeeName string) string
}

// PaymentHook is a post-commit side effect on a payment record.
type PaymentHook struct {
	Name string
	Run  func(ctx context.Context, p *domain.Payment) error
}

type PaymentSvc struct {
	repo     PaymentStore
	bookings BookingLookup
	users    UserDirectory
	qr       ArtifactRenderer
	logger   *zap.Logger

	onCreated   []PaymentHook
	onCompleted []PaymentHook
}

func NewPaymentSvc(repo PaymentStore, bookings BookingLookup, users UserDirectory, qr ArtifactRenderer, logger *zap.Logger) *PaymentSvc {
	return &PaymentSvc{repo: repo, bookings: bookings, users: users, qr: qr, logger: logger}
}

func (s *PaymentSvc) OnCreated(hooks ...PaymentHook) {
	s.onCreated = append(s.onCreated, hooks...)
}

func (s *PaymentSvc) OnCompleted(hooks ...PaymentHook) {
	s.onCompleted = append(s.onCompleted, hooks...)
}

func (s *PaymentSvc) runHooks(ctx context.Context, hooks []PaymentHook, p *domain.Payment) {
	for _, h := range hooks {
		if err := h.Run(ctx, p); err != nil {
			s.logger.Error("payment hook failed",
				zap.String("hook", h.Name),
				zap.String("payment_id", p.ID),
				zap.Error(err))
		}
	}
}

// EnsurePayment creates the payment record for a confirmed booking if one
// does not exist yet. Idempotent: an existing record is returned unchanged.
// When the owner has no payment identifier at all the record is skipped on
// purpose and (nil, nil) is returned.
func (s *PaymentSvc) EnsurePayment(ctx context.Context, b *domain.Booking) (*domain.Payment, error) {
	if b.Status != domain.BookingConfirmed {
		return nil, domain.ErrInvalidOperation("booking must be confirmed before payment")
	}
	if existing, err := s.repo.ByBookingID(ctx, b.ID); err == nil {
		s.logger.Info("payment record already exists",
			zap.String("booking_id", b.ID),
			zap.String("payment_id", existing.ID))
		return existing, nil
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	owner, err := s.users.ByID(ctx, b.OwnerID)
	if err != nil {
		return nil, err
	}
	upiID := s.resolvePaymentIdentifier(owner)
	if upiID == "" {
		s.logger.Info("owner has no payment identifier, skipping payment record",
			zap.String("booking_id", b.ID),
			zap.String("owner_id", owner.ID))
		return nil, nil
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		RenterID:      b.RenterID,
		OwnerID:       b.OwnerID,
		Amount:        b.TotalAmount,
		Status:        domain.PaymentPending,
		PaymentMethod: "qr_code",
		QRCodeURL:     s.artifactURL(owner, b.TotalAmount, upiID),
		PaymentDate:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			// concurrent confirmation created it first
			return s.repo.ByBookingID(ctx, b.ID)
		}
		return nil, err
	}
	s.runHooks(ctx, s.onCreated, p)
	return p, nil
}

// CreateForBooking is the explicit on-demand path. Unlike EnsurePayment it
// refuses when a record already exists or when the owner cannot be paid.
func (s *PaymentSvc) CreateForBooking(ctx context.Context, bookingID string) (*PaymentView, error) {
	if bookingID == "" {
		return nil, domain.ErrInvalidInput("booking id is required")
	}
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed {
		return nil, domain.ErrInvalidOperation("booking must be confirmed before payment")
	}
	if _, err := s.repo.ByBookingID(ctx, bookingID); err == nil {
		return nil, domain.ErrInvalidOperation("payment already exists for this booking")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	owner, err := s.users.ByID(ctx, b.OwnerID)
	if err != nil {
		return nil, err
	}
	upiID := s.resolvePaymentIdentifier(owner)
	if upiID == "" {
		return nil, domain.ErrInvalidOperation("owner has no payment identifier configured")
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		RenterID:      b.RenterID,
		OwnerID:       b.OwnerID,
		Amount:        b.TotalAmount,
		Status:        domain.PaymentPending,
		PaymentMethod: "qr_code",
		QRCodeURL:     s.artifactURL(owner, b.TotalAmount, upiID),
		PaymentDate:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return nil, domain.ErrInvalidOperation("payment already exists for this booking")
		}
		return nil, err
	}
	s.runHooks(ctx, s.onCreated, p)
	return s.enrich(ctx, p), nil
}

func (s *PaymentSvc) ByBooking(ctx context.Context, callerID, bookingID string) (*PaymentView, error) {
	p, err := s.repo.ByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p.RenterID != callerID && p.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to view this payment")
	}
	return s.enrich(ctx, p), nil
}

func (s *PaymentSvc) ByID(ctx context.Context, callerID, paymentID string) (*PaymentView, error) {
	p, err := s.repo.ByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.RenterID != callerID && p.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to view this payment")
	}
	return s.enrich(ctx, p), nil
}

// UpdateStatus accepts any valid status value; there is no ordering between
// payment statuses. The completion hooks fire only when the status observed
// before the write was not already completed.
func (s *PaymentSvc) UpdateStatus(ctx context.Context, callerID, paymentID string, status domain.PaymentStatus, transactionID, notes string) (*PaymentView, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidInput("invalid payment status %q", status)
	}
	p, err := s.repo.ByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.RenterID != callerID && p.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to update this payment")
	}

	prev := p.Status
	fields := map[string]any{"status": status}
	if transactionID != "" {
		fields["transaction_id"] = transactionID
	}
	if notes != "" {
		fields["notes"] = notes
	}
	updated, err := s.repo.UpdateFields(ctx, paymentID, fields)
	if err != nil {
		return nil, err
	}

	if status == domain.PaymentCompleted && prev != domain.PaymentCompleted {
		s.runHooks(ctx, s.onCompleted, updated)
	}
	return s.enrich(ctx, updated), nil
}

func (s *PaymentSvc) Delete(ctx context.Context, callerID, paymentID string) error {
	p, err := s.repo.ByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.Status != domain.PaymentFailed && p.Status != domain.PaymentCancelled {
		return domain.ErrInvalidOperation("cannot delete payment with status %s", p.Status)
	}
	if p.RenterID != callerID && p.OwnerID != callerID {
		return domain.ErrForbidden("not authorized to delete this payment")
	}
	return s.repo.Delete(ctx, paymentID)
}

func (s *PaymentSvc) ListForUser(ctx context.Context, userID string, role domain.Role) ([]PaymentView, error) {
	var (
		ps  []domain.Payment
		err error
	)
	if role == domain.RoleOwner {
		ps, err = s.repo.ListByOwner(ctx, userID)
	} else {
		ps, err = s.repo.ListByRenter(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]PaymentView, 0, len(ps))
	for i := range ps {
		out = append(out, *s.enrich(ctx, &ps[i]))
	}
	return out, nil
}

// resolvePaymentIdentifier prefers the owner's configured UPI id and falls
// back to one derived from the contact phone.
func (s *PaymentSvc) resolvePaymentIdentifier(owner *domain.User) string {
	if owner.UPIID != "" {
		return owner.UPIID
	}
	if owner.Phone != "" {
		return owner.Phone + "@upi"
	}
	return ""
}

// artifactURL uses the owner's uploaded QR artifact when one exists,
// otherwise asks the external renderer for one.
func (s *PaymentSvc) artifactURL(owner *domain.User, amount float64, upiID string) string {
	if owner.QRCodeURL != "" {
		return owner.QRCodeURL
	}
	return s.qr.PaymentArtifactURL(upiID, amount, owner.Name)
}

func (s *PaymentSvc) enrich(ctx context.Context, p *domain.Payment) *PaymentView {
	v := &PaymentView{Payment: *p}
	if b, err := s.bookings.ByID(ctx, p.BookingID); err == nil {
		v.Booking = b
	}
	if renter, err := s.users.ByID(ctx, p.RenterID); err == nil {
		v.Renter = renter.Ref()
	}
	if owner, err := s.users.ByID(ctx, p.OwnerID); err == nil {
		v.Owner = owner.Ref()
	}
	return v
}
