package account

import (
	"time"

	"github.com/google/uuid"
)

// MaxSessionsPerAccount bounds the login history kept per account; the oldest entry is evicted first.
const MaxSessionsPerAccount = 10

// Role represents what an account may do
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ApprovalStatus is the vendor application review state
type ApprovalStatus string

const (
	ApprovalNone        ApprovalStatus = ""
	ApprovalSubmitted   ApprovalStatus = "submitted"
	ApprovalUnderReview ApprovalStatus = "under_review"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

// GeoPoint is a WGS84 coordinate
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// VendorProfile holds store and identity-document details of a vendor account
type VendorProfile struct {
	StoreName      *string
	StoreAddress   *string
	StoreLogoRef   *string
	Geo            *GeoPoint
	IDType         *string
	IDNumber       *string
	IDDocumentRef  *string
	ApprovalStatus ApprovalStatus
}

// Account represents a customer, vendor or staff identity
type Account struct {
	ID             uuid.UUID
	Mobile         string
	Name           string
	PasswordHashed string
	Role           Role
	ProfileImage   *string
	IsVerified     bool
	Vendor         VendorProfile
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsVendor reports whether the account has the vendor role
func (a *Account) IsVendor() bool {
	return a.Role == RoleVendor
}

// Session is one login of an account on one device
type Session struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Seq          int64
	DeviceInfo   string
	OS           string
	LastLogin    time.Time
	LastActiveAt time.Time
	IsActive     bool
}

var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalSubmitted:   {ApprovalUnderReview, ApprovalApproved, ApprovalRejected},
	ApprovalUnderReview: {ApprovalApproved, ApprovalRejected},
	ApprovalApproved:    {},
	ApprovalRejected:    {},
}

// CanTransitionApproval reports whether a reviewer may move an application from current to next
func CanTransitionApproval(current, next ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanSubmitApplication reports whether the vendor may (re)submit store documents
func CanSubmitApplication(current ApprovalStatus) bool {
	return current == ApprovalNone || current == ApprovalSubmitted || current == ApprovalRejected
}
