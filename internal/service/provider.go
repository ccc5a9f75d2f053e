package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/repository"
	"github.com/google/uuid"
)

const providerEntity = "Provider"

// RegisterProviderInput is the data needed to register a provider.
type RegisterProviderInput struct {
	Name    string
	Sector  string
	Phone   *string
	Email   *string
	Address *string
}

type ProviderService struct {
	repos *repository.Repositories
}

func NewProviderService(repos *repository.Repositories) *ProviderService {
	return &ProviderService{repos: repos}
}

// RegisterProvider creates an active provider. Name and sector must not be
// blank after trimming.
func (s *ProviderService) RegisterProvider(ctx context.Context, in RegisterProviderInput) (*model.Provider, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewRuleViolation("PROVIDER_NAME_EMPTY", "Provider name cannot be empty")
	}
	if strings.TrimSpace(in.Sector) == "" {
		return nil, errs.NewRuleViolation("PROVIDER_SECTOR_EMPTY", "Provider sector cannot be empty")
	}

	provider := &model.Provider{
		Name:     in.Name,
		Sector:   in.Sector,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
		IsActive: true,
	}

	if err := s.repos.Provider.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *ProviderService) GetProvider(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	provider, err := s.repos.Provider.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NewNotFound(providerEntity, id)
	}
	return provider, nil
}

func (s *ProviderService) ListProviders(ctx context.Context, filter repository.ProviderFilter) ([]model.Provider, error) {
	return s.repos.Provider.List(ctx, filter)
}

func (s *ProviderService) UpdateProvider(ctx context.Context, id uuid.UUID, patch repository.ProviderPatch) (*model.Provider, error) {
	provider, err := s.repos.Provider.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NewNotFound(providerEntity, id)
	}
	return provider, nil
}

func (s *ProviderService) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repos.Provider.Delete(ctx, id)
	if errors.Is(err, repository.ErrStillReferenced) {
		return errs.NewRuleViolation("PROVIDER_IN_USE", "Provider with ID %s still has bookings", id)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewNotFound(providerEntity, id)
	}
	return nil
}
