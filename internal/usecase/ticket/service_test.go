package ticket

import (
	"context"
	"regexp"
	"testing"

	domainTicket "flashdeals/internal/domain/ticket"
	"flashdeals/internal/infrastructure/database/memory"
	appErrors "flashdeals/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^#FD-\d{4}$`)

func newTestService() *Service {
	return NewService(memory.NewStore().Tickets(), nil)
}

func sequence(codes ...string) domainTicket.CodeGenerator {
	i := 0
	return func() string {
		code := codes[i%len(codes)]
		i++
		return code
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	accountID := uuid.New()

	resp, err := svc.Create(ctx, accountID, &CreateTicketRequest{
		Subject:     "Payout missing",
		Description: "My payout did not arrive",
		Category:    "Billing",
	})
	require.NoError(t, err)
	assert.Regexp(t, codePattern, resp.Code)
	assert.Equal(t, "Open", resp.Status)
	assert.Equal(t, "Medium", resp.Priority)

	mine, err := svc.ListMine(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, resp.ID, mine[0].ID)

	others, err := svc.ListMine(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "s", Description: "d", Category: "Shipping"})
	assert.ErrorIs(t, err, domainTicket.ErrInvalidCategory)

	_, err = svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "s", Description: "d", Category: "Store Verification", Priority: "Critical"})
	assert.ErrorIs(t, err, domainTicket.ErrInvalidPriority)

	_, err = svc.Create(ctx, uuid.New(), &CreateTicketRequest{Description: "d", Category: "General"})
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
}

func TestCreate_RetriesOnCodeCollision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.generateCode = sequence("#FD-1234")

	first, err := svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "a", Description: "a", Category: "General"})
	require.NoError(t, err)
	assert.Equal(t, "#FD-1234", first.Code)

	svc.generateCode = sequence("#FD-1234", "#FD-1234", "#FD-5678")
	second, err := svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "b", Description: "b", Category: "General"})
	require.NoError(t, err)
	assert.Equal(t, "#FD-5678", second.Code)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_CodeSpaceExhausted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.generateCode = sequence("#FD-1111")

	_, err := svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "a", Description: "a", Category: "General"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "b", Description: "b", Category: "General"})
	assert.ErrorIs(t, err, domainTicket.ErrCodeSpaceExhausted)
	assert.Equal(t, appErrors.CodeConflict, appErrors.CodeOf(err))
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	staffID := uuid.New()

	created, err := svc.Create(ctx, uuid.New(), &CreateTicketRequest{Subject: "a", Description: "a", Category: "Technical", Priority: "Urgent"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, staffID, created.ID, &UpdateStatusRequest{Status: "Resolved"})
	assert.ErrorIs(t, err, domainTicket.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, staffID, created.ID, &UpdateStatusRequest{Status: "Pending"})
	assert.ErrorIs(t, err, domainTicket.ErrInvalidStatus)

	resp, err := svc.UpdateStatus(ctx, staffID, created.ID, &UpdateStatusRequest{Status: "In Review"})
	require.NoError(t, err)
	assert.Equal(t, "In Review", resp.Status)

	resp, err = svc.UpdateStatus(ctx, staffID, created.ID, &UpdateStatusRequest{Status: "Closed"})
	require.NoError(t, err)
	assert.Equal(t, "Closed", resp.Status)

	_, err = svc.UpdateStatus(ctx, staffID, created.ID, &UpdateStatusRequest{Status: "Open"})
	assert.ErrorIs(t, err, domainTicket.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, staffID, uuid.New(), &UpdateStatusRequest{Status: "In Review"})
	assert.ErrorIs(t, err, domainTicket.ErrTicketNotFound)
}
