package adapter

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubCreditBureau_Deterministic(t *testing.T) {
	bureau := NewStubCreditBureau()

	first, err := bureau.FetchSnapshot(context.Background(), "a@example.com", "+911111111111")
	require.NoError(t, err)
	second, err := bureau.FetchSnapshot(context.Background(), "a@example.com", "+911111111111")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStubCreditBureau_Domain(t *testing.T) {
	bureau := NewStubCreditBureau()

	snapshot, err := bureau.FetchSnapshot(context.Background(), "b@example.com", "+912222222222")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, snapshot.CreditScore, 650)
	assert.Less(t, snapshot.CreditScore, 900)
	assert.True(t, snapshot.PreApprovedLimit.GreaterThanOrEqual(decimal.NewFromInt(100000)))
	assert.True(t, snapshot.PreApprovedLimit.LessThan(decimal.NewFromInt(600000)))
}

func TestStubCreditBureau_VariesByIdentity(t *testing.T) {
	bureau := NewStubCreditBureau()

	a, err := bureau.FetchSnapshot(context.Background(), "a@example.com", "+911111111111")
	require.NoError(t, err)
	b, err := bureau.FetchSnapshot(context.Background(), "b@example.com", "+912222222222")
	require.NoError(t, err)

	// Different identities hash to different snapshots in practice.
	assert.NotEqual(t, a, b)
}
