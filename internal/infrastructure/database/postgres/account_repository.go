package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository implements account.Repository interface
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domainAccount.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domainAccount.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	dbModel := toAccountModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainAccount.ErrMobileAlreadyExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.ID = dbModel.ID
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domainAccount.Account, error) {
	return r.getOne(ctx, "id = ?", accountID)
}

func (r *AccountRepository) GetByMobile(ctx context.Context, mobile string) (*domainAccount.Account, error) {
	return r.getOne(ctx, "mobile = ?", mobile)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*domainAccount.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainAccount.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, a *domainAccount.Account) error {
	a.UpdatedAt = time.Now()
	return r.update(ctx, a.ID, map[string]interface{}{
		"name":          a.Name,
		"profile_image": a.ProfileImage,
		"updated_at":    a.UpdatedAt,
	})
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	return r.update(ctx, accountID, map[string]interface{}{
		"password_hashed": passwordHash,
		"updated_at":      time.Now(),
	})
}

func (r *AccountRepository) MarkVerified(ctx context.Context, accountID uuid.UUID) error {
	return r.update(ctx, accountID, map[string]interface{}{
		"is_verified": true,
		"updated_at":  time.Now(),
	})
}

func (r *AccountRepository) UpdateVendorProfile(ctx context.Context, accountID uuid.UUID, p domainAccount.VendorProfile) error {
	var lat, lng *float64
	if p.Geo != nil {
		lat, lng = &p.Geo.Latitude, &p.Geo.Longitude
	}

	return r.update(ctx, accountID, map[string]interface{}{
		"store_name":      p.StoreName,
		"store_address":   p.StoreAddress,
		"store_logo_ref":  p.StoreLogoRef,
		"latitude":        lat,
		"longitude":       lng,
		"id_type":         p.IDType,
		"id_number":       p.IDNumber,
		"id_document_ref": p.IDDocumentRef,
		"approval_status": string(p.ApprovalStatus),
		"updated_at":      time.Now(),
	})
}

func (r *AccountRepository) UpdateApprovalStatus(ctx context.Context, accountID uuid.UUID, status domainAccount.ApprovalStatus) error {
	return r.update(ctx, accountID, map[string]interface{}{
		"approval_status": string(status),
		"updated_at":      time.Now(),
	})
}

func (r *AccountRepository) UpdateRole(ctx context.Context, accountID uuid.UUID, role domainAccount.Role) error {
	return r.update(ctx, accountID, map[string]interface{}{
		"role":       string(role),
		"updated_at": time.Now(),
	})
}

func (r *AccountRepository) update(ctx context.Context, accountID uuid.UUID, values map[string]interface{}) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(values)

	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainAccount.ErrAccountNotFound
	}

	return nil
}

func toAccountModel(a *domainAccount.Account) *models.AccountModel {
	m := &models.AccountModel{
		ID:             a.ID,
		Mobile:         a.Mobile,
		Name:           a.Name,
		PasswordHashed: a.PasswordHashed,
		Role:           string(a.Role),
		ProfileImage:   a.ProfileImage,
		IsVerified:     a.IsVerified,
		StoreName:      a.Vendor.StoreName,
		StoreAddress:   a.Vendor.StoreAddress,
		StoreLogoRef:   a.Vendor.StoreLogoRef,
		IDType:         a.Vendor.IDType,
		IDNumber:       a.Vendor.IDNumber,
		IDDocumentRef:  a.Vendor.IDDocumentRef,
		ApprovalStatus: string(a.Vendor.ApprovalStatus),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.Vendor.Geo != nil {
		m.Latitude = &a.Vendor.Geo.Latitude
		m.Longitude = &a.Vendor.Geo.Longitude
	}
	return m
}

func toAccountEntity(m *models.AccountModel) *domainAccount.Account {
	a := &domainAccount.Account{
		ID:             m.ID,
		Mobile:         m.Mobile,
		Name:           m.Name,
		PasswordHashed: m.PasswordHashed,
		Role:           domainAccount.Role(m.Role),
		ProfileImage:   m.ProfileImage,
		IsVerified:     m.IsVerified,
		Vendor: domainAccount.VendorProfile{
			StoreName:      m.StoreName,
			StoreAddress:   m.StoreAddress,
			StoreLogoRef:   m.StoreLogoRef,
			IDType:         m.IDType,
			IDNumber:       m.IDNumber,
			IDDocumentRef:  m.IDDocumentRef,
			ApprovalStatus: domainAccount.ApprovalStatus(m.ApprovalStatus),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Latitude != nil && m.Longitude != nil {
		a.Vendor.Geo = &domainAccount.GeoPoint{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	return a
}
