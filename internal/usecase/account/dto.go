package account

import (
	"time"

	domainAccount "flashdeals/internal/domain/account"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Mobile       string  `json:"mobile" validate:"required,mobile"`
	Password     string  `json:"password" validate:"required"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=1024"`
}

type RegisterResponse struct {
	AccountID uuid.UUID `json:"account_id"`
}

type LoginRequest struct {
	Mobile     string `json:"mobile" validate:"required"`
	Password   string `json:"password" validate:"required"`
	DeviceInfo string `json:"device_info" validate:"required,max=255"`
	OS         string `json:"os" validate:"required,max=100"`
}

type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	SessionID uuid.UUID        `json:"session_id"`
	Account   *AccountResponse `json:"account"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=255"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=1024"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type IssueOTPRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`
}

type IssueOTPResponse struct {
	ChallengeID string `json:"challenge_id"`
}

type VerifyRequest struct {
	AccountID   uuid.UUID `json:"account_id" validate:"required"`
	ChallengeID string    `json:"challenge_id"`
	OTP         string    `json:"otp" validate:"required"`
}

type GeoRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type VendorApplicationRequest struct {
	StoreName     string      `json:"store_name" validate:"required,max=255"`
	StoreAddress  string      `json:"store_address" validate:"required,max=1000"`
	IDType        string      `json:"id_type" validate:"required,max=50"`
	IDNumber      string      `json:"id_number" validate:"required,max=100"`
	IDDocumentRef string      `json:"doc_ref" validate:"required,max=1024"`
	Geo           *GeoRequest `json:"geo"`
}

type UpdateStoreRequest struct {
	StoreName    *string     `json:"store_name" validate:"omitempty,min=1,max=255"`
	StoreAddress *string     `json:"store_address" validate:"omitempty,min=1,max=1000"`
	StoreLogoRef *string     `json:"logo_ref" validate:"omitempty,max=1024"`
	Geo          *GeoRequest `json:"geo"`
}

type ApprovalRequest struct {
	Status string `json:"status" validate:"required"`
}

type GeoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type VendorResponse struct {
	StoreName      *string      `json:"store_name"`
	StoreAddress   *string      `json:"store_address"`
	StoreLogoRef   *string      `json:"store_logo_ref"`
	Geo            *GeoResponse `json:"geo"`
	IDType         *string      `json:"id_type"`
	ApprovalStatus string       `json:"approval_status"`
}

// AccountResponse is the account summary; it never carries the credential hash
type AccountResponse struct {
	ID           uuid.UUID       `json:"id"`
	Mobile       string          `json:"mobile"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	ProfileImage *string         `json:"profile_image"`
	IsVerified   bool            `json:"is_verified"`
	Vendor       *VendorResponse `json:"vendor,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToAccountResponse(a *domainAccount.Account) *AccountResponse {
	if a == nil {
		return nil
	}

	resp := &AccountResponse{
		ID:           a.ID,
		Mobile:       a.Mobile,
		Name:         a.Name,
		Role:         string(a.Role),
		ProfileImage: a.ProfileImage,
		IsVerified:   a.IsVerified,
		CreatedAt:    a.CreatedAt,
	}

	if a.IsVendor() {
		resp.Vendor = &VendorResponse{
			StoreName:      a.Vendor.StoreName,
			StoreAddress:   a.Vendor.StoreAddress,
			StoreLogoRef:   a.Vendor.StoreLogoRef,
			IDType:         a.Vendor.IDType,
			ApprovalStatus: string(a.Vendor.ApprovalStatus),
		}
		if a.Vendor.Geo != nil {
			resp.Vendor.Geo = &GeoResponse{
				Latitude:  a.Vendor.Geo.Latitude,
				Longitude: a.Vendor.Geo.Longitude,
			}
		}
	}

	return resp
}

func toGeoPoint(g *GeoRequest) *domainAccount.GeoPoint {
	if g == nil {
		return nil
	}
	return &domainAccount.GeoPoint{Latitude: g.Latitude, Longitude: g.Longitude}
}
