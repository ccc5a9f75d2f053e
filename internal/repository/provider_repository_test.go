package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProviderRepository(testutil.NewTestDB(t))

	provider := testutil.NewTestProvider()
	provider.Phone = testutil.StrPtr("+15550100")
	require.NoError(t, repo.Create(ctx, provider))

	assert.NotEqual(t, uuid.Nil, provider.ID)
	assert.False(t, provider.CreatedAt.IsZero())
	assert.False(t, provider.UpdatedAt.IsZero())

	got, err := repo.GetByID(ctx, provider.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "City Clinic", got.Name)
	assert.Equal(t, "medical", got.Sector)
	assert.Equal(t, "+15550100", *got.Phone)
	assert.Nil(t, got.Email)
	assert.True(t, got.IsActive)
}

func TestProviderRepository_GetByIDMissing(t *testing.T) {
	repo := NewProviderRepository(testutil.NewTestDB(t))

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByIDForShare(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProviderRepository_ListFiltersBySectorAndPaginates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewProviderRepository(db)

	names := []string{"A", "B", "C", "D"}
	for i, name := range names {
		p := testutil.NewTestProvider()
		p.Name = name
		if i == 2 {
			p.Sector = "automotive"
		}
		require.NoError(t, repo.Create(ctx, p))
		// Distinct created_at values keep the order deterministic.
		time.Sleep(2 * time.Millisecond)
	}

	all, err := repo.List(ctx, ProviderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "D", all[3].Name)

	sector := "medical"
	medical, err := repo.List(ctx, ProviderFilter{Sector: &sector})
	require.NoError(t, err)
	require.Len(t, medical, 3)
	for _, p := range medical {
		assert.Equal(t, "medical", p.Sector)
	}

	page, err := repo.List(ctx, ProviderFilter{Sector: &sector, Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "B", page[0].Name)

	none := "legal"
	empty, err := repo.List(ctx, ProviderFilter{Sector: &none})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProviderRepository_UpdateOnlyTouchesSetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewProviderRepository(testutil.NewTestDB(t))

	provider := testutil.NewTestProvider()
	provider.Email = testutil.StrPtr("desk@cityclinic.test")
	provider.Address = testutil.StrPtr("1 Main St")
	require.NoError(t, repo.Create(ctx, provider))

	time.Sleep(5 * time.Millisecond)

	updated, err := repo.Update(ctx, provider.ID, ProviderPatch{
		IsActive: optional.Of(false),
		Address:  optional.Null[string](),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.Address)
	assert.Equal(t, "City Clinic", updated.Name)
	assert.Equal(t, "medical", updated.Sector)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "desk@cityclinic.test", *updated.Email)
	assert.True(t, updated.UpdatedAt.After(provider.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(provider.CreatedAt))
}

func TestProviderRepository_UpdateEmptyPatchReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewProviderRepository(testutil.NewTestDB(t))

	provider := testutil.NewTestProvider()
	require.NoError(t, repo.Create(ctx, provider))

	got, err := repo.Update(ctx, provider.ID, ProviderPatch{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, provider.ID, got.ID)
	assert.True(t, got.UpdatedAt.Equal(provider.UpdatedAt))
}

func TestProviderRepository_UpdateMissing(t *testing.T) {
	repo := NewProviderRepository(testutil.NewTestDB(t))

	got, err := repo.Update(context.Background(), uuid.New(), ProviderPatch{Name: optional.Of("x")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProviderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewProviderRepository(testutil.NewTestDB(t))

	provider := testutil.NewTestProvider()
	require.NoError(t, repo.Create(ctx, provider))

	deleted, err := repo.Delete(ctx, provider.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, provider.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := repo.GetByID(ctx, provider.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProviderRepository_DeleteReferenced(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	provider := testutil.InsertProvider(t, db, testutil.NewTestProvider())
	booking := testutil.InsertBooking(t, db, testutil.NewTestBooking(provider.ID))

	repo := NewProviderRepository(db)
	deleted, err := repo.Delete(ctx, provider.ID)
	require.ErrorIs(t, err, ErrStillReferenced)
	assert.False(t, deleted)

	got, err := repo.GetByID(ctx, provider.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	kept, err := NewBookingRepository(db).GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, provider.ID, kept.ProviderID)
}

func TestRepositories_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)

	provider := testutil.NewTestProvider()
	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Provider.Create(ctx, provider); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := repos.Provider.GetByID(ctx, provider.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositories_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(testutil.NewTestDB(t))

	provider := testutil.NewTestProvider()
	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Provider.Create(ctx, provider); err != nil {
			return err
		}
		locked, err := tx.Provider.GetByIDForShare(ctx, provider.ID)
		if err != nil {
			return err
		}
		booking := testutil.NewTestBooking(locked.ID)
		return tx.Booking.Create(ctx, booking)
	})
	require.NoError(t, err)

	bookings, err := repos.Booking.List(ctx, BookingFilter{ProviderID: &provider.ID})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, model.BookingStatusPending, bookings[0].Status)
}
