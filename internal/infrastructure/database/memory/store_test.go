package memory

import (
	"context"
	"testing"
	"time"

	"flashdeals/internal/domain/account"
	"flashdeals/internal/domain/offer"
	"flashdeals/internal/domain/ticket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedAccount(t *testing.T, store *Store, mobile string, role account.Role) *account.Account {
	t.Helper()
	a := &account.Account{Mobile: mobile, Name: "Test", Role: role, PasswordHashed: "hash"}
	require.NoError(t, store.Accounts().Create(context.Background(), a))
	return a
}

func TestAccounts_CreateAndClone(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	a := seedAccount(t, store, "+15550100200", account.RoleVendor)
	assert.NotEqual(t, uuid.Nil, a.ID)

	err := store.Accounts().Create(ctx, &account.Account{Mobile: "+15550100200"})
	assert.ErrorIs(t, err, account.ErrMobileAlreadyExists)

	require.NoError(t, store.Accounts().UpdateVendorProfile(ctx, a.ID, account.VendorProfile{StoreName: strPtr("Bakery")}))

	got, err := store.Accounts().GetByMobile(ctx, "+15550100200")
	require.NoError(t, err)
	require.NotNil(t, got.Vendor.StoreName)
	*got.Vendor.StoreName = "mutated"

	again, err := store.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bakery", *again.Vendor.StoreName)

	_, err = store.Accounts().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSessions_AppendTrimsOldest(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	owner := seedAccount(t, store, "+15550100200", account.RoleCustomer)

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		s := &account.Session{AccountID: owner.ID, LastActiveAt: time.Now()}
		evicted, err := store.Sessions().Append(ctx, s, 3)
		require.NoError(t, err)
		if i < 3 {
			assert.Zero(t, evicted)
		} else {
			assert.Equal(t, 1, evicted)
		}
		ids = append(ids, s.ID)
	}

	listed, err := store.Sessions().ListByAccount(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[3], listed[0].ID)
	assert.Equal(t, ids[1], listed[2].ID)

	assert.ErrorIs(t, store.Sessions().Touch(ctx, owner.ID, ids[0], time.Now()), account.ErrSessionNotFound)
	assert.ErrorIs(t, store.Sessions().Delete(ctx, owner.ID, ids[0]), account.ErrSessionNotFound)

	_, err = store.Sessions().Append(ctx, &account.Session{AccountID: uuid.New()}, 3)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSessions_DeleteInactiveSince(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	owner := seedAccount(t, store, "+15550100200", account.RoleCustomer)
	now := time.Now()

	_, err := store.Sessions().Append(ctx, &account.Session{AccountID: owner.ID, LastActiveAt: now.Add(-48 * time.Hour)}, 10)
	require.NoError(t, err)
	_, err = store.Sessions().Append(ctx, &account.Session{AccountID: owner.ID, LastActiveAt: now}, 10)
	require.NoError(t, err)

	removed, err := store.Sessions().DeleteInactiveSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	listed, err := store.Sessions().ListByAccount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestOffers_LiveListingJoinsVendor(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	vendor := seedAccount(t, store, "+15550100200", account.RoleVendor)
	require.NoError(t, store.Accounts().UpdateVendorProfile(ctx, vendor.ID, account.VendorProfile{
		StoreName: strPtr("Bakery"),
		Geo:       &account.GeoPoint{Latitude: 10.7, Longitude: 106.6},
	}))
	now := time.Now()

	live := &offer.Offer{VendorID: vendor.ID, Title: "Bread", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)}
	expired := &offer.Offer{VendorID: vendor.ID, Title: "Cake", StartDate: now.Add(-3 * time.Hour), EndDate: now.Add(-time.Hour)}
	require.NoError(t, store.Offers().Create(ctx, live))
	require.NoError(t, store.Offers().Create(ctx, expired))
	assert.Equal(t, offer.StatusActive, live.Status)

	listed, err := store.Offers().ListLive(ctx, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, live.ID, listed[0].ID)
	require.NotNil(t, listed[0].Vendor)
	assert.Equal(t, "Bakery", *listed[0].Vendor.StoreName)
	assert.InDelta(t, 10.7, *listed[0].Vendor.Latitude, 0.0001)

	byVendor, err := store.Offers().ListLiveByVendor(ctx, uuid.New(), now)
	require.NoError(t, err)
	assert.Empty(t, byVendor)
}

func TestOffers_DeleteCascadesWishlist(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	vendor := seedAccount(t, store, "+15550100200", account.RoleVendor)
	shopper := seedAccount(t, store, "+15550100201", account.RoleCustomer)
	now := time.Now()

	o := &offer.Offer{VendorID: vendor.ID, Title: "Bread", EndDate: now.Add(time.Hour)}
	require.NoError(t, store.Offers().Create(ctx, o))

	added, err := store.Wishlist().Toggle(ctx, shopper.ID, o.ID)
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, store.Offers().Delete(ctx, o.ID))
	assert.ErrorIs(t, store.Offers().Delete(ctx, o.ID), offer.ErrOfferNotFound)

	ids, err := store.Wishlist().OfferIDs(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTickets_CodesAreUnique(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	owner := uuid.New()

	first := &ticket.Ticket{AccountID: owner, Code: "#FD-1234", Status: ticket.StatusOpen}
	require.NoError(t, store.Tickets().Create(ctx, first))

	err := store.Tickets().Create(ctx, &ticket.Ticket{AccountID: owner, Code: "#FD-1234"})
	assert.ErrorIs(t, err, ticket.ErrDuplicateCode)

	require.NoError(t, store.Tickets().UpdateStatus(ctx, first.ID, ticket.StatusInReview))
	got, err := store.Tickets().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusInReview, got.Status)
}
