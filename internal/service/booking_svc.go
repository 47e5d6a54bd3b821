package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	UpdateStatusFromPending(ctx context.Context, id string, to domain.BookingStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

// BookingHook is a post-commit side effect. Hooks run synchronously in
// registration order; a failing hook is logged and never disturbs its
// siblings or the already-committed transition.
type BookingHook struct {
	Name string
	Run  func(ctx context.Context, b *domain.Booking) error
}

type BookingSvc struct {
	repo    BookingStore
	catalog PropertyCatalog
	users   UserDirectory
	logger  *zap.Logger

	afterCreate []BookingHook
	afterDecide []BookingHook
}

func NewBookingSvc(repo BookingStore, catalog PropertyCatalog, users UserDirectory, logger *zap.Logger) *BookingSvc {
	return &BookingSvc{repo: repo, catalog: catalog, users: users, logger: logger}
}

func (s *BookingSvc) AfterCreate(hooks ...BookingHook) { s.afterCreate = append(s.afterCreate, hooks...) }
func (s *BookingSvc) AfterDecide(hooks ...BookingHook) { s.afterDecide = append(s.afterDecide, hooks...) }

func (s *BookingSvc) Create(ctx context.Context, renterID, propertyID string, moveIn time.Time, totalAmount float64) (*BookingView, error) {
	if propertyID == "" || moveIn.IsZero() {
		return nil, domain.ErrInvalidInput("missing required fields")
	}
	if totalAmount <= 0 {
		return nil, domain.ErrInvalidInput("total amount must be positive")
	}
	prop, err := s.catalog.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop.OwnerID == renterID {
		return nil, domain.ErrInvalidOperation("cannot book your own property")
	}

	b := &domain.Booking{
		PropertyID:  propertyID,
		RenterID:    renterID,
		OwnerID:     prop.OwnerID,
		Status:      domain.BookingPending,
		MoveInDate:  moveIn,
		TotalAmount: totalAmount,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.runHooks(ctx, s.afterCreate, b)
	return s.enrich(ctx, b), nil
}

// Decide moves a pending booking to confirmed or rejected. The write is a
// conditional status flip; once it lands the response is success no matter
// what the side-effect hooks do.
func (s *BookingSvc) Decide(ctx context.Context, callerID, bookingID string, target domain.BookingStatus) (*BookingView, error) {
	if target != domain.BookingConfirmed && target != domain.BookingRejected {
		return nil, domain.ErrInvalidInput("status must be %q or %q", domain.BookingConfirmed, domain.BookingRejected)
	}
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to update this booking")
	}
	if b.Status != domain.BookingPending {
		return nil, domain.ErrInvalidOperation("booking is already %s, cannot update from %s to %s", b.Status, b.Status, target)
	}

	ok, err := s.repo.UpdateStatusFromPending(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race: someone else decided first
		if cur, cerr := s.repo.ByID(ctx, bookingID); cerr == nil {
			return nil, domain.ErrInvalidOperation("booking is already %s, cannot update from %s to %s", cur.Status, cur.Status, target)
		}
		return nil, domain.ErrInvalidOperation("booking is no longer pending")
	}

	b.Status = target
	s.runHooks(ctx, s.afterDecide, b)
	return s.enrich(ctx, b), nil
}

func (s *BookingSvc) Get(ctx context.Context, callerID, bookingID string) (*BookingView, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != callerID && b.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to view this booking")
	}
	return s.enrich(ctx, b), nil
}

func (s *BookingSvc) ListForOwner(ctx context.Context, ownerID string) ([]BookingView, error) {
	bs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, bs), nil
}

func (s *BookingSvc) ListForRenter(ctx context.Context, renterID string) ([]BookingView, error) {
	bs, err := s.repo.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, bs), nil
}

// Delete removes a booking with no cascade; payments and notifications that
// reference it stay behind.
func (s *BookingSvc) Delete(ctx context.Context, callerID, bookingID string) error {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.RenterID != callerID && b.OwnerID != callerID {
		return domain.ErrForbidden("cannot delete this booking")
	}
	if b.Status != domain.BookingPending && b.RenterID != callerID {
		return domain.ErrForbidden("cannot delete this booking")
	}
	return s.repo.Delete(ctx, bookingID)
}

func (s *BookingSvc) runHooks(ctx context.Context, hooks []BookingHook, b *domain.Booking) {
	for _, h := range hooks {
		if err := h.Run(ctx, b); err != nil {
			s.logger.Error("booking hook failed",
				zap.String("hook", h.Name),
				zap.String("booking_id", b.ID),
				zap.Error(err))
		}
	}
}

// enrich is display-only: lookup failures leave the ref empty rather than
// failing the request.
func (s *BookingSvc) enrich(ctx context.Context, b *domain.Booking) *BookingView {
	v := &BookingView{Booking: *b}
	if prop, err := s.catalog.ByID(ctx, b.PropertyID); err == nil {
		v.Property = prop
	}
	if renter, err := s.users.ByID(ctx, b.RenterID); err == nil {
		v.Renter = renter.Ref()
	}
	if owner, err := s.users.ByID(ctx, b.OwnerID); err == nil {
		v.Owner = owner.Ref()
	}
	return v
}

func (s *BookingSvc) enrichAll(ctx context.Context, bs []domain.Booking) []BookingView {
	out := make([]BookingView, 0, len(bs))
	for i := range bs {
		out = append(out, *s.enrich(ctx, &bs[i]))
	}
	return out
}
