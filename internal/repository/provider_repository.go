package repository

import (
	"context"

	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProviderFilter narrows ProviderRepository.List. Zero values disable a filter.
type ProviderFilter struct {
	Sector *string
	Skip   int
	Limit  int
}

// ProviderPatch carries the fields of a partial update. Only set fields are written.
type ProviderPatch struct {
	Name     optional.Field[string]
	Sector   optional.Field[string]
	Phone    optional.Field[string]
	Email    optional.Field[string]
	Address  optional.Field[string]
	IsActive optional.Field[bool]
}

func (p ProviderPatch) columns() map[string]any {
	columns := map[string]any{}
	setColumn(columns, "name", p.Name)
	setColumn(columns, "sector", p.Sector)
	setColumn(columns, "phone", p.Phone)
	setColumn(columns, "email", p.Email)
	setColumn(columns, "address", p.Address)
	setColumn(columns, "is_active", p.IsActive)
	return columns
}

// setColumn records field under column when it was sent; explicit null becomes NULL.
func setColumn[T any](columns map[string]any, column string, field optional.Field[T]) {
	if !field.Set {
		return
	}
	if field.Null {
		columns[column] = nil
		return
	}
	columns[column] = field.Value
}

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	if err := r.db.WithContext(ctx).Create(provider).Error; err != nil {
		return errors.Wrap(err, "create provider")
	}
	return nil
}

// GetByID returns (nil, nil) when no provider has the id.
func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetByIDForShare loads the provider and holds a FOR SHARE lock on its row
// until the surrounding transaction ends, so it cannot be deleted or
// deactivated concurrently. Only meaningful inside Repositories.Transaction.
func (r *ProviderRepository) GetByIDForShare(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}), id)
}

func (r *ProviderRepository) first(db *gorm.DB, id uuid.UUID) (*model.Provider, error) {
	var provider model.Provider
	err := db.First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get provider")
	}
	return &provider, nil
}

// List returns providers in creation order.
func (r *ProviderRepository) List(ctx context.Context, filter ProviderFilter) ([]model.Provider, error) {
	q := r.db.WithContext(ctx).Model(&model.Provider{})

	if filter.Sector != nil {
		q = q.Where("sector = ?", *filter.Sector)
	}

	q = paginate(q, filter.Skip, filter.Limit)

	providers := []model.Provider{}
	if err := q.Order("created_at ASC").Order("id ASC").Find(&providers).Error; err != nil {
		return nil, errors.Wrap(err, "list providers")
	}
	return providers, nil
}

// Update writes the set fields of patch and returns the fresh record, or
// (nil, nil) when the provider does not exist. An empty patch writes
// nothing and returns the current record.
func (r *ProviderRepository) Update(ctx context.Context, id uuid.UUID, patch ProviderPatch) (*model.Provider, error) {
	var provider model.Provider

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&provider, "id = ?", id).Error; err != nil {
			return err
		}

		columns := patch.columns()
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&provider).Updates(columns).Error; err != nil {
			return err
		}
		return tx.First(&provider, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update provider")
	}
	return &provider, nil
}

// Delete removes the provider and reports whether it existed. It fails with
// ErrStillReferenced while bookings point at the provider.
func (r *ProviderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Provider{}, "id = ?", id)
	if res.Error != nil {
		if isForeignKeyViolation(r.db, res.Error) {
			return false, errors.Wrap(ErrStillReferenced, "delete provider")
		}
		return false, errors.Wrap(res.Error, "delete provider")
	}
	return res.RowsAffected > 0, nil
}

func paginate(q *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
