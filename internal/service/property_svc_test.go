package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
)

type fakePropertyStore struct {
	*fakeCatalog
	deleted []string
}

func newFakePropertyStore(ps ...*domain.Property) *fakePropertyStore {
	return &fakePropertyStore{fakeCatalog: newFakeCatalog(ps...)}
}

func (f *fakePropertyStore) Create(_ context.Context, p *domain.Property) error {
	if p.ID == "" {
		p.ID = "prop-new"
	}
	f.props[p.ID] = p
	return nil
}

func (f *fakePropertyStore) List(_ context.Context, flt repository.PropertyFilter) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.props {
		if flt.OwnerID != "" && p.OwnerID != flt.OwnerID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePropertyStore) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Property, error) {
	p, ok := f.props[id]
	if !ok {
		return nil, domain.ErrNotFound("property not found")
	}
	if v, ok := fields["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := fields["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := fields["status"]; ok {
		p.Status = v.(domain.PropertyStatus)
	}
	return f.ByID(ctx, id)
}

func (f *fakePropertyStore) Delete(_ context.Context, id string) error {
	delete(f.props, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func testPropertySvc(t *testing.T) (*PropertySvc, *fakePropertyStore) {
	t.Helper()
	store := newFakePropertyStore(&domain.Property{
		ID: "prop-1", OwnerID: "owner-1", Title: "Sea View Villa",
		Price: 25000, Location: "Goa", PropertyType: "villa",
		Status: domain.PropertyAvailable,
	})
	users := newFakeUsers(&domain.User{ID: "owner-1", Name: "Asha", Phone: "9876543210"})
	return NewPropertySvc(store, users), store
}

func TestPropertyCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := testPropertySvc(t)

	t.Run("new listings start available", func(t *testing.T) {
		p, err := svc.Create(ctx, "owner-1", PropertyInput{
			Title: "Hill Mansion", Location: "Lonavala", Price: 80000, PropertyType: "mansion",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyAvailable, p.Status)
		assert.Equal(t, "owner-1", p.OwnerID)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", PropertyInput{
			Title: "Hut", Location: "Goa", Price: 100, PropertyType: "hut",
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})
}

func TestPropertyOwnerScope(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner updates", func(t *testing.T) {
		svc, _ := testPropertySvc(t)
		_, err := svc.Update(ctx, "stranger", "prop-1", PropertyUpdate{Price: 1})
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

		p, err := svc.Update(ctx, "owner-1", "prop-1", PropertyUpdate{Status: "rented"})
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyRented, p.Status)
	})

	t.Run("only the owner deletes", func(t *testing.T) {
		svc, store := testPropertySvc(t)
		err := svc.Delete(ctx, "stranger", "prop-1")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		require.NoError(t, svc.Delete(ctx, "owner-1", "prop-1"))
		assert.Equal(t, []string{"prop-1"}, store.deleted)
	})
}

func TestPropertyWithOwner(t *testing.T) {
	svc, _ := testPropertySvc(t)
	p, owner, err := svc.WithOwner(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, "Sea View Villa", p.Title)
	assert.Equal(t, "Asha", owner.Name)
	assert.Equal(t, "9876543210", owner.Phone)
}
