package memory

import (
	"context"
	"time"

	"flashdeals/internal/domain/account"

	"github.com/google/uuid"
)

type accountRepository struct {
	store *Store
}

func (r *accountRepository) Create(_ context.Context, a *account.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.mobiles[a.Mobile]; exists {
		return account.ErrMobileAlreadyExists
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	s.accounts[a.ID] = cloneAccount(*a)
	s.mobiles[a.Mobile] = a.ID
	return nil
}

func (r *accountRepository) GetByID(_ context.Context, accountID uuid.UUID) (*account.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	c := cloneAccount(a)
	return &c, nil
}

func (r *accountRepository) GetByMobile(ctx context.Context, mobile string) (*account.Account, error) {
	r.store.mu.RLock()
	id, ok := r.store.mobiles[mobile]
	r.store.mu.RUnlock()
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *accountRepository) UpdateProfile(_ context.Context, a *account.Account) error {
	return r.mutate(a.ID, func(stored *account.Account) {
		stored.Name = a.Name
		stored.ProfileImage = cloneString(a.ProfileImage)
	})
}

func (r *accountRepository) UpdatePassword(_ context.Context, accountID uuid.UUID, passwordHash string) error {
	return r.mutate(accountID, func(stored *account.Account) {
		stored.PasswordHashed = passwordHash
	})
}

func (r *accountRepository) MarkVerified(_ context.Context, accountID uuid.UUID) error {
	return r.mutate(accountID, func(stored *account.Account) {
		stored.IsVerified = true
	})
}

func (r *accountRepository) UpdateVendorProfile(_ context.Context, accountID uuid.UUID, profile account.VendorProfile) error {
	return r.mutate(accountID, func(stored *account.Account) {
		stored.Vendor = cloneVendor(profile)
	})
}

func (r *accountRepository) UpdateApprovalStatus(_ context.Context, accountID uuid.UUID, status account.ApprovalStatus) error {
	return r.mutate(accountID, func(stored *account.Account) {
		stored.Vendor.ApprovalStatus = status
	})
}

func (r *accountRepository) UpdateRole(_ context.Context, accountID uuid.UUID, role account.Role) error {
	return r.mutate(accountID, func(stored *account.Account) {
		stored.Role = role
	})
}

func (r *accountRepository) mutate(accountID uuid.UUID, apply func(*account.Account)) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[accountID]
	if !ok {
		return account.ErrAccountNotFound
	}
	apply(&stored)
	stored.UpdatedAt = time.Now()
	s.accounts[accountID] = stored
	return nil
}

func cloneAccount(a account.Account) account.Account {
	a.ProfileImage = cloneString(a.ProfileImage)
	a.Vendor = cloneVendor(a.Vendor)
	return a
}

func cloneVendor(v account.VendorProfile) account.VendorProfile {
	v.StoreName = cloneString(v.StoreName)
	v.StoreAddress = cloneString(v.StoreAddress)
	v.StoreLogoRef = cloneString(v.StoreLogoRef)
	v.IDType = cloneString(v.IDType)
	v.IDNumber = cloneString(v.IDNumber)
	v.IDDocumentRef = cloneString(v.IDDocumentRef)
	if v.Geo != nil {
		g := *v.Geo
		v.Geo = &g
	}
	return v
}
