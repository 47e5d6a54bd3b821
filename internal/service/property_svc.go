package service

import (
	"context"
	"strings"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
)

type PropertyStore interface {
	Create(ctx context.Context, p *domain.Property) error
	ByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, f repository.PropertyFilter) ([]domain.Property, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

type PropertySvc struct {
	repo  PropertyStore
	users UserDirectory
}

func NewPropertySvc(repo PropertyStore, users UserDirectory) *PropertySvc {
	return &PropertySvc{repo: repo, users: users}
}

type PropertyInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Photos       []string `json:"photos"`
}

func (s *PropertySvc) Create(ctx context.Context, ownerID string, in PropertyInput) (*domain.Property, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Location == "" {
		return nil, domain.ErrInvalidInput("title and location are required")
	}
	if in.Price <= 0 {
		return nil, domain.ErrInvalidInput("price must be greater than zero")
	}
	if !domain.ValidPropertyType(in.PropertyType) {
		return nil, domain.ErrInvalidInput("unknown property type %q", in.PropertyType)
	}
	p := &domain.Property{
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Location:     in.Location,
		PropertyType: in.PropertyType,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Photos:       in.Photos,
		Status:       domain.PropertyAvailable,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertySvc) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.ByID(ctx, id)
}

func (s *PropertySvc) List(ctx context.Context, f repository.PropertyFilter) ([]domain.Property, error) {
	return s.repo.List(ctx, f)
}

type PropertyUpdate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Photos       []string `json:"photos"`
	Status       string   `json:"status"`
}

// Update is owner-scoped. Zero values leave the stored field alone.
func (s *PropertySvc) Update(ctx context.Context, callerID, id string, in PropertyUpdate) (*domain.Property, error) {
	p, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, domain.ErrForbidden("not authorized to update this property")
	}
	fields := map[string]any{}
	if v := strings.TrimSpace(in.Title); v != "" {
		fields["title"] = v
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Price > 0 {
		fields["price"] = in.Price
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.PropertyType != "" {
		if !domain.ValidPropertyType(in.PropertyType) {
			return nil, domain.ErrInvalidInput("unknown property type %q", in.PropertyType)
		}
		fields["property_type"] = in.PropertyType
	}
	if in.Bedrooms > 0 {
		fields["bedrooms"] = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		fields["bathrooms"] = in.Bathrooms
	}
	if in.Photos != nil {
		fields["photos"] = in.Photos
	}
	if in.Status != "" {
		st := domain.PropertyStatus(in.Status)
		if st != domain.PropertyAvailable && st != domain.PropertyRented {
			return nil, domain.ErrInvalidInput("status must be available or rented")
		}
		fields["status"] = st
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *PropertySvc) Delete(ctx context.Context, callerID, id string) error {
	p, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return domain.ErrForbidden("not authorized to delete this property")
	}
	return s.repo.Delete(ctx, id)
}

// WithOwner attaches the owner contact card for listing detail pages.
func (s *PropertySvc) WithOwner(ctx context.Context, id string) (*domain.Property, domain.UserRef, error) {
	p, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, domain.UserRef{}, err
	}
	ref := domain.UserRef{ID: p.OwnerID}
	if u, err := s.users.ByID(ctx, p.OwnerID); err == nil {
		ref = u.Ref()
	}
	return p, ref, nil
}
