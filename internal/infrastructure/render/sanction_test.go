package render

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

func approvedApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		uuid.New(), decimal.NewFromInt(250000), 36, decimal.NewFromFloat(11.5), "wedding", decimal.NewFromFloat(8245.51), nil)
	require.NoError(t, err)
	approved, err := app.ApplyDecision(model.Decision{Status: valueobject.StatusApproved(), Approved: true})
	require.NoError(t, err)
	return approved
}

func testUser(t *testing.T) model.User {
	t.Helper()
	u, err := model.NewUser("b@example.com", "+919876543210", "Borrower Name", "hash", 780, decimal.NewFromInt(300000))
	require.NoError(t, err)
	return u
}

func TestSanctionRenderer_Render(t *testing.T) {
	renderer, err := NewSanctionRenderer(t.TempDir())
	require.NoError(t, err)

	app := approvedApplication(t)
	ref, err := renderer.Render(context.Background(), app, testUser(t))
	require.NoError(t, err)

	content, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Borrower Name")
	assert.Contains(t, string(content), app.ID().String())
	assert.Contains(t, string(content), "250000.00")
	assert.Contains(t, string(content), "8245.51")
}

func TestSanctionRenderer_RejectsNonApproved(t *testing.T) {
	renderer, err := NewSanctionRenderer(t.TempDir())
	require.NoError(t, err)

	app, err := model.NewLoanApplication(
		uuid.New(), decimal.NewFromInt(250000), 36, decimal.NewFromFloat(11.5), "wedding", decimal.NewFromFloat(8245.51), nil)
	require.NoError(t, err)

	_, err = renderer.Render(context.Background(), app, testUser(t))
	assert.Error(t, err)
}
