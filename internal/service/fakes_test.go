package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
)

// In-memory fakes for the store interfaces. Each one keeps just enough
// behavior for the services under test; none of them touch a real DB.

type fakeUsers struct {
	users map[string]*domain.User
}

func newFakeUsers(us ...*domain.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*domain.User)}
	for _, u := range us {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound("user not found")
}

type fakeCatalog struct {
	props map[string]*domain.Property
}

func newFakeCatalog(ps ...*domain.Property) *fakeCatalog {
	f := &fakeCatalog{props: make(map[string]*domain.Property)}
	for _, p := range ps {
		f.props[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) ByID(_ context.Context, id string) (*domain.Property, error) {
	if p, ok := f.props[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound("property not found")
}

type fakeBookingStore struct {
	bookings map[string]*domain.Booking
	seq      int

	// flipDenied simulates losing the conditional status update to a
	// concurrent writer.
	flipDenied bool
}

func newFakeBookingStore(bs ...*domain.Booking) *fakeBookingStore {
	f := &fakeBookingStore{bookings: make(map[string]*domain.Booking)}
	for _, b := range bs {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookingStore) Create(_ context.Context, b *domain.Booking) error {
	if b.ID == "" {
		f.seq++
		b.ID = fmt.Sprintf("bk-%d", f.seq)
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) ByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound("booking not found")
}

func (f *fakeBookingStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Booking, error) {
	return f.list(func(b *domain.Booking) bool { return b.OwnerID == ownerID }), nil
}

func (f *fakeBookingStore) ListByRenter(_ context.Context, renterID string) ([]domain.Booking, error) {
	return f.list(func(b *domain.Booking) bool { return b.RenterID == renterID }), nil
}

func (f *fakeBookingStore) list(keep func(*domain.Booking) bool) []domain.Booking {
	var out []domain.Booking
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBookingStore) UpdateStatusFromPending(_ context.Context, id string, to domain.BookingStatus) (bool, error) {
	b, ok := f.bookings[id]
	if f.flipDenied || !ok || b.Status != domain.BookingPending {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeBookingStore) Delete(_ context.Context, id string) error {
	delete(f.bookings, id)
	return nil
}

type fakePaymentStore struct {
	payments map[string]*domain.Payment // by id
	seq      int
}

func newFakePaymentStore(ps ...*domain.Payment) *fakePaymentStore {
	f := &fakePaymentStore{payments: make(map[string]*domain.Payment)}
	for _, p := range ps {
		f.payments[p.ID] = p
	}
	return f
}

func (f *fakePaymentStore) Create(_ context.Context, p *domain.Payment) error {
	for _, existing := range f.payments {
		if existing.BookingID == p.BookingID {
			return repository.ErrPaymentExists
		}
	}
	if p.ID == "" {
		f.seq++
		p.ID = fmt.Sprintf("pay-%d", f.seq)
	}
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentStore) ByID(_ context.Context, id string) (*domain.Payment, error) {
	if p, ok := f.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound("payment not found")
}

func (f *fakePaymentStore) ByBookingID(_ context.Context, bookingID string) (*domain.Payment, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("payment not found")
}

func (f *fakePaymentStore) UpdateFields(_ context.Context, id string, fields map[string]any) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, domain.ErrNotFound("payment not found")
	}
	if v, ok := fields["status"]; ok {
		p.Status = v.(domain.PaymentStatus)
	}
	if v, ok := fields["transaction_id"]; ok {
		p.TransactionID = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		p.Notes = v.(string)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) Delete(_ context.Context, id string) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListByRenter(_ context.Context, renterID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.RenterID == renterID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	created []domain.Notification
}

func (f *fakeNotificationStore) Create(_ context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = fmt.Sprintf("nt-%d", len(f.created)+1)
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID string, _ int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, recipientID, id string) (bool, error) {
	for i, n := range f.created {
		if n.ID == id && n.RecipientID == recipientID {
			f.created[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	var n int64
	for i := range f.created {
		if f.created[i].RecipientID == recipientID && !f.created[i].IsRead {
			f.created[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, recipientID, id string) (bool, error) {
	for i, n := range f.created {
		if n.ID == id && n.RecipientID == recipientID {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, recipientID string) (int64, error) {
	var n int64
	for _, nt := range f.created {
		if nt.RecipientID == recipientID && !nt.IsRead {
			n++
		}
	}
	return n, nil
}

type fakeMessageStore struct {
	msgs  []domain.Message
	heads []repository.ConversationHead
}

func (f *fakeMessageStore) Create(_ context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("msg-%d", len(f.msgs)+1)
	}
	f.msgs = append(f.msgs, *m)
	return nil
}

func (f *fakeMessageStore) between(propertyID, a, b string) []domain.Message {
	var out []domain.Message
	for _, m := range f.msgs {
		if m.PropertyID != propertyID {
			continue
		}
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeMessageStore) Between(_ context.Context, propertyID, a, b string) ([]domain.Message, error) {
	return f.between(propertyID, a, b), nil
}

func (f *fakeMessageStore) LastBetween(_ context.Context, propertyID, a, b string) (*domain.Message, error) {
	ms := f.between(propertyID, a, b)
	if len(ms) == 0 {
		return nil, domain.ErrNotFound("message not found")
	}
	return &ms[len(ms)-1], nil
}

func (f *fakeMessageStore) MarkRead(_ context.Context, propertyID, senderID, receiverID string) (int64, error) {
	var n int64
	for i := range f.msgs {
		m := &f.msgs[i]
		if m.PropertyID == propertyID && m.SenderID == senderID && m.ReceiverID == receiverID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageStore) CountUnread(_ context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		if m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageStore) ConversationHeads(_ context.Context, _ string) ([]repository.ConversationHead, error) {
	return f.heads, nil
}

// recorder captures hook invocations in order.
type recorder struct {
	calls []string
}

func (r *recorder) bookingHook(name string, fail bool) BookingHook {
	return BookingHook{
		Name: name,
		Run: func(context.Context, *domain.Booking) error {
			r.calls = append(r.calls, name)
			if fail {
				return fmt.Errorf("%s exploded", name)
			}
			return nil
		},
	}
}

func (r *recorder) paymentHook(name string) PaymentHook {
	return PaymentHook{
		Name: name,
		Run: func(context.Context, *domain.Payment) error {
			r.calls = append(r.calls, name)
			return nil
		},
	}
}

func (r *recorder) saw(name string) bool {
	for _, c := range r.calls {
		if strings.HasPrefix(c, name) {
			return true
		}
	}
	return false
}
