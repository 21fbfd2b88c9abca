package otp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	p := NewStaticProvider("")
	accountID := uuid.New()

	challenge, err := p.Issue(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, ChallengeFor(accountID), challenge)

	ok, err := p.Verify(ctx, challenge, DefaultStaticCode)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Verify(ctx, challenge, "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Verify(ctx, "not-a-challenge", DefaultStaticCode)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticProvider_CustomCode(t *testing.T) {
	ctx := context.Background()
	p := NewStaticProvider("4242")

	ok, err := p.Verify(ctx, uuid.NewString(), "4242")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Issue(ctx, uuid.Nil)
	assert.Error(t, err)
}
