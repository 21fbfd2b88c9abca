package ticket

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Category classifies what a ticket is about
type Category string

const (
	CategoryGeneral           Category = "General"
	CategoryTechnical         Category = "Technical"
	CategoryBilling           Category = "Billing"
	CategoryStoreVerification Category = "Store Verification"
	CategoryOthers            Category = "Others"
)

// Priority is the urgency picked by the submitter
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Status represents the ticket review state
type Status string

const (
	StatusOpen     Status = "Open"
	StatusInReview Status = "In Review"
	StatusResolved Status = "Resolved"
	StatusClosed   Status = "Closed"
)

const (
	codeMin = 1000
	codeMax = 9999
)

// Ticket is a support request raised by an account holder
type Ticket struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Code          string
	Subject       string
	Description   string
	Category      Category
	Priority      Priority
	Status        Status
	AttachmentRef *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryTechnical, CategoryBilling, CategoryStoreVerification, CategoryOthers:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusResolved, StatusClosed:
		return true
	}
	return false
}

var validTransitions = map[Status][]Status{
	StatusOpen:     {StatusInReview},
	StatusInReview: {StatusResolved, StatusClosed},
	StatusResolved: {},
	StatusClosed:   {},
}

// CanTransitionTo checks if the status can move to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CodeGenerator returns a display code; tests replace it to force collisions
type CodeGenerator func() string

// RandomCode draws a code of the form #FD-#### with four digits in [1000, 9999]
func RandomCode() string {
	return FormatCode(codeMin + rand.IntN(codeMax-codeMin+1))
}

func FormatCode(n int) string {
	return fmt.Sprintf("#FD-%04d", n)
}
