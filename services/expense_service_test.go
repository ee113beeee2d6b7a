package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

func newExpenseFixture() (*fakeStore, *ExpenseService) {
	store := newFakeStore()
	store.addMember("g1", "alice", "Alice", true)
	store.addMember("g1", "bob", "Bob", false)
	store.addMember("g1", "carol", "Carol", false)
	return store, NewExpenseService(store)
}

func TestExpense_Create(t *testing.T) {
	store, service := newExpenseFixture()

	expense, err := service.Create("g1", "bob", &models.CreateExpenseRequest{
		Description: "groceries",
		Amount:      90,
		Currency:    "USD",
		Category:    "food",
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 30},
			{UserID: "bob", ShareAmount: 30},
			{UserID: "carol", ShareAmount: 30},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	// Payer defaults to the caller.
	assert.Equal(t, "bob", expense.PaidBy)
	require.Len(t, expense.Splits, 3)
	for _, split := range expense.Splits {
		assert.Equal(t, expense.ID, split.ExpenseID)
	}

	stored, err := store.ListExpensesAndSplits("g1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestExpense_CreateWithExplicitPayer(t *testing.T) {
	_, service := newExpenseFixture()

	expense, err := service.Create("g1", "bob", &models.CreateExpenseRequest{
		Description: "taxi",
		Amount:      20,
		PaidBy:      "alice",
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 10},
			{UserID: "bob", ShareAmount: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", expense.PaidBy)
}

func TestExpense_CreateRejectsNonMemberCaller(t *testing.T) {
	_, service := newExpenseFixture()

	_, err := service.Create("g1", "mallory", &models.CreateExpenseRequest{
		Description: "lunch",
		Amount:      10,
		Splits:      []models.SplitInput{{UserID: "mallory", ShareAmount: 10}},
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}

func TestExpense_CreateRejectsNonMemberSplitUser(t *testing.T) {
	_, service := newExpenseFixture()

	_, err := service.Create("g1", "alice", &models.CreateExpenseRequest{
		Description: "lunch",
		Amount:      10,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 5},
			{UserID: "mallory", ShareAmount: 5},
		},
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestExpense_CreateRejectsSplitSumMismatch(t *testing.T) {
	store, service := newExpenseFixture()

	_, err := service.Create("g1", "alice", &models.CreateExpenseRequest{
		Description: "dinner",
		Amount:      100,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 50},
			{UserID: "bob", ShareAmount: 49.50},
		},
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "split amounts sum to")

	// Nothing was persisted.
	stored, _ := store.ListExpensesAndSplits("g1")
	assert.Empty(t, stored)
}

func TestExpense_CreateToleratesSubCentSplitDrift(t *testing.T) {
	_, service := newExpenseFixture()

	// Three-way split of 100: shares carry a sub-cent remainder.
	_, err := service.Create("g1", "alice", &models.CreateExpenseRequest{
		Description: "rent",
		Amount:      100,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 33.33},
			{UserID: "bob", ShareAmount: 33.33},
			{UserID: "carol", ShareAmount: 33.34},
		},
	})
	require.NoError(t, err)
}

func TestExpense_CreateCompensatesFailedSplitWrite(t *testing.T) {
	store, service := newExpenseFixture()
	store.splitErr = errors.New("splits table unavailable")

	_, err := service.Create("g1", "alice", &models.CreateExpenseRequest{
		Description: "dinner",
		Amount:      40,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 20},
			{UserID: "bob", ShareAmount: 20},
		},
	})
	require.Error(t, err)

	// The expense created before the split failure was rolled back.
	stored, _ := store.ListExpensesAndSplits("g1")
	assert.Empty(t, stored, "no half-written expense may survive")
}

func TestExpense_UpdateReplacesSplits(t *testing.T) {
	store, service := newExpenseFixture()
	expense := store.addExpense("g1", "alice", 60, map[string]float64{"alice": 30, "bob": 30})

	updated, err := service.Update(expense.ID, "alice", &models.UpdateExpenseRequest{
		Description: "dinner, corrected",
		Amount:      90,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 30},
			{UserID: "bob", ShareAmount: 30},
			{UserID: "carol", ShareAmount: 30},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.Amount)
	assert.Equal(t, "dinner, corrected", updated.Description)
	require.Len(t, updated.Splits, 3)

	stored, err := store.GetExpense(expense.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, stored.Amount)
	assert.Len(t, stored.Splits, 3)
}

func TestExpense_UpdatePermissions(t *testing.T) {
	store, service := newExpenseFixture()
	expense := store.addExpense("g1", "bob", 60, map[string]float64{"alice": 30, "bob": 30})

	req := &models.UpdateExpenseRequest{
		Amount: 60,
		Splits: []models.SplitInput{
			{UserID: "alice", ShareAmount: 30},
			{UserID: "bob", ShareAmount: 30},
		},
	}

	// A plain member who is not the payer is refused.
	_, err := service.Update(expense.ID, "carol", req)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)

	// The payer may update.
	_, err = service.Update(expense.ID, "bob", req)
	require.NoError(t, err)

	// So may a group admin.
	_, err = service.Update(expense.ID, "alice", req)
	require.NoError(t, err)
}

func TestExpense_UpdateNotFound(t *testing.T) {
	_, service := newExpenseFixture()

	_, err := service.Update("missing", "alice", &models.UpdateExpenseRequest{
		Amount: 10,
		Splits: []models.SplitInput{{UserID: "alice", ShareAmount: 10}},
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestExpense_Delete(t *testing.T) {
	store, service := newExpenseFixture()
	expense := store.addExpense("g1", "bob", 60, map[string]float64{"alice": 30, "bob": 30})

	// Non-payer non-admin cannot delete.
	err := service.Delete(expense.ID, "carol")
	require.Error(t, err)

	require.NoError(t, service.Delete(expense.ID, "bob"))

	stored, _ := store.ListExpensesAndSplits("g1")
	assert.Empty(t, stored)
}

func TestExpense_DeleteAsAdmin(t *testing.T) {
	store, service := newExpenseFixture()
	expense := store.addExpense("g1", "bob", 60, map[string]float64{"alice": 30, "bob": 30})

	require.NoError(t, service.Delete(expense.ID, "alice"))

	stored, _ := store.ListExpensesAndSplits("g1")
	assert.Empty(t, stored)
}
