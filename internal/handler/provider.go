package handler

import (
	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/repository"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/deppfellow/frontdesk/internal/service"
	"github.com/deppfellow/frontdesk/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProviderIDRequest addresses a single provider by path id.
type ProviderIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (r *ProviderIDRequest) Validate() error {
	return validation.Struct(r)
}

// CreateProviderRequest is the registration payload. Blank names and
// sectors pass here and are rejected by the service with a domain code.
type CreateProviderRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Sector  string  `json:"sector" validate:"required,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Address *string `json:"address"`
}

func (r *CreateProviderRequest) Validate() error {
	return validation.Struct(r)
}

// ListProvidersRequest holds the list query parameters.
type ListProvidersRequest struct {
	Skip   int    `query:"skip" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
	Sector string `query:"sector" validate:"max=100"`
}

func (r *ListProvidersRequest) SetDefaults() {
	r.Limit = DefaultPageLimit
}

func (r *ListProvidersRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ListProvidersRequest) filter() repository.ProviderFilter {
	f := repository.ProviderFilter{Skip: r.Skip, Limit: r.Limit}
	if r.Sector != "" {
		f.Sector = &r.Sector
	}
	return f
}

// UpdateProviderRequest is a partial update. Omitted fields are left
// untouched; optional contact fields may be cleared with null.
type UpdateProviderRequest struct {
	ID       string                 `param:"id" json:"-"`
	Name     optional.Field[string] `json:"name"`
	Sector   optional.Field[string] `json:"sector"`
	Phone    optional.Field[string] `json:"phone"`
	Email    optional.Field[string] `json:"email"`
	Address  optional.Field[string] `json:"address"`
	IsActive optional.Field[bool]   `json:"is_active"`
}

func (r *UpdateProviderRequest) Validate() error {
	var check validation.Checker
	check.Var("id", r.ID, "required,uuid")
	validation.CheckOptional(&check, "name", r.Name, "notblank,max=255", false)
	validation.CheckOptional(&check, "sector", r.Sector, "notblank,max=100", false)
	validation.CheckOptional(&check, "phone", r.Phone, "max=50", true)
	validation.CheckOptional(&check, "email", r.Email, "email,max=255", true)
	validation.CheckOptional(&check, "address", r.Address, "", true)
	validation.CheckOptional(&check, "is_active", r.IsActive, "", false)
	return check.Err()
}

func (r *UpdateProviderRequest) patch() repository.ProviderPatch {
	return repository.ProviderPatch{
		Name:     r.Name,
		Sector:   r.Sector,
		Phone:    r.Phone,
		Email:    r.Email,
		Address:  r.Address,
		IsActive: r.IsActive,
	}
}

type ProviderHandler struct {
	Handler
}

func NewProviderHandler(s *server.Server) *ProviderHandler {
	return &ProviderHandler{Handler: NewHandler(s)}
}

func (h *ProviderHandler) RegisterProvider(c echo.Context, req *CreateProviderRequest) (*model.Provider, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Provider.RegisterProvider(c.Request().Context(), service.RegisterProviderInput{
		Name:    req.Name,
		Sector:  req.Sector,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
}

func (h *ProviderHandler) ListProviders(c echo.Context, req *ListProvidersRequest) ([]model.Provider, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Provider.ListProviders(c.Request().Context(), req.filter())
}

func (h *ProviderHandler) GetProvider(c echo.Context, req *ProviderIDRequest) (*model.Provider, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Provider.GetProvider(c.Request().Context(), uuid.MustParse(req.ID))
}

func (h *ProviderHandler) UpdateProvider(c echo.Context, req *UpdateProviderRequest) (*model.Provider, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Provider.UpdateProvider(c.Request().Context(), uuid.MustParse(req.ID), req.patch())
}

func (h *ProviderHandler) DeleteProvider(c echo.Context, req *ProviderIDRequest) error {
	services, err := h.services(c)
	if err != nil {
		return err
	}

	return services.Provider.DeleteProvider(c.Request().Context(), uuid.MustParse(req.ID))
}
