// repository/ledger_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/services"
)

// LedgerRepository implements services.LedgerStore against Postgres
type LedgerRepository struct {
	DB *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		DB: GetDB(),
	}
}

// ListExpensesAndSplits retrieves all expenses for a group with their splits
func (r *LedgerRepository) ListExpensesAndSplits(groupID string) ([]*models.Expense, error) {
	rows, err := r.DB.Query(
		`SELECT id, group_id, description, amount, currency, category, paid_by, creation_time
         FROM expenses WHERE group_id = $1 ORDER BY creation_time ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		var expense models.Expense
		err = rows.Scan(
			&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
			&expense.Currency, &expense.Category, &expense.PaidBy, &expense.CreationTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, &expense)
		byID[expense.ID] = &expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %v", err)
	}

	sRows, err := r.DB.Query(
		`SELECT s.expense_id, s.user_id, s.share_amount
         FROM splits s JOIN expenses e ON e.id = s.expense_id
         WHERE e.group_id = $1`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %v", err)
	}
	defer sRows.Close()

	for sRows.Next() {
		var split models.Split
		if err := sRows.Scan(&split.ExpenseID, &split.UserID, &split.ShareAmount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %v", err)
		}
		if expense, ok := byID[split.ExpenseID]; ok {
			expense.Splits = append(expense.Splits, split)
		}
	}
	if err := sRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %v", err)
	}

	return expenses, nil
}

// GetExpense retrieves one expense with its splits, or nil if absent
func (r *LedgerRepository) GetExpense(id string) (*models.Expense, error) {
	var expense models.Expense
	err := r.DB.QueryRow(
		`SELECT id, group_id, description, amount, currency, category, paid_by, creation_time
         FROM expenses WHERE id = $1`,
		id,
	).Scan(
		&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.Currency, &expense.Category, &expense.PaidBy, &expense.CreationTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %v", err)
	}

	rows, err := r.DB.Query(
		"SELECT expense_id, user_id, share_amount FROM splits WHERE expense_id = $1",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &split.ShareAmount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %v", err)
		}
		expense.Splits = append(expense.Splits, split)
	}
	return &expense, rows.Err()
}

// CreateExpense saves an expense record
func (r *LedgerRepository) CreateExpense(expense *models.Expense) error {
	_, err := r.DB.Exec(
		`INSERT INTO expenses (id, group_id, description, amount, currency, category, paid_by, creation_time)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.Currency, expense.Category, expense.PaidBy, expense.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}
	return nil
}

// UpdateExpense rewrites an expense's mutable fields
func (r *LedgerRepository) UpdateExpense(expense *models.Expense) error {
	_, err := r.DB.Exec(
		`UPDATE expenses SET description = $2, amount = $3, currency = $4, category = $5
         WHERE id = $1`,
		expense.ID, expense.Description, expense.Amount, expense.Currency, expense.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %v", err)
	}
	return nil
}

// CreateSplits saves the splits of an expense
func (r *LedgerRepository) CreateSplits(expenseID string, splits []models.Split) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, split := range splits {
		_, err = tx.Exec(
			"INSERT INTO splits (expense_id, user_id, share_amount) VALUES ($1, $2, $3)",
			expenseID, split.UserID, split.ShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %v", err)
		}
	}

	return tx.Commit()
}

// ReplaceSplits deletes an expense's splits and writes the new set
func (r *LedgerRepository) ReplaceSplits(expenseID string, splits []models.Split) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM splits WHERE expense_id = $1", expenseID); err != nil {
		return fmt.Errorf("failed to delete splits: %v", err)
	}
	for _, split := range splits {
		_, err = tx.Exec(
			"INSERT INTO splits (expense_id, user_id, share_amount) VALUES ($1, $2, $3)",
			expenseID, split.UserID, split.ShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %v", err)
		}
	}

	return tx.Commit()
}

// DeleteExpense removes an expense; splits cascade via foreign key
func (r *LedgerRepository) DeleteExpense(id string) error {
	_, err := r.DB.Exec("DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %v", err)
	}
	return nil
}

// ListSettlements retrieves group-scoped settlements matching the filter
func (r *LedgerRepository) ListSettlements(filter services.SettlementFilter) ([]*models.Settlement, error) {
	query := `SELECT id, COALESCE(group_id, ''), from_user_id, to_user_id, amount, status,
              COALESCE(message, ''), COALESCE(rejected_reason, ''), COALESCE(resend_of, ''),
              created_at, updated_at
              FROM settlements WHERE 1=1`
	var args []interface{}

	if filter.GroupID != "" {
		args = append(args, filter.GroupID)
		query += fmt.Sprintf(" AND group_id = $%d", len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND (from_user_id = $%d OR to_user_id = $%d)", len(args), len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %v", err)
	}
	defer rows.Close()

	return scanSettlements(rows)
}

// ListGlobalSettlements retrieves cross-group settlements touching a user
func (r *LedgerRepository) ListGlobalSettlements(userID, status string) ([]*models.Settlement, error) {
	query := `SELECT id, COALESCE(group_id, ''), from_user_id, to_user_id, amount, status,
              COALESCE(message, ''), COALESCE(rejected_reason, ''), COALESCE(resend_of, ''),
              created_at, updated_at
              FROM settlements
              WHERE (group_id IS NULL OR group_id = '')
                AND (from_user_id = $1 OR to_user_id = $1)`
	args := []interface{}{userID}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get global settlements: %v", err)
	}
	defer rows.Close()

	return scanSettlements(rows)
}

// GetSettlement retrieves one settlement, or nil if absent
func (r *LedgerRepository) GetSettlement(id string) (*models.Settlement, error) {
	var s models.Settlement
	err := r.DB.QueryRow(
		`SELECT id, COALESCE(group_id, ''), from_user_id, to_user_id, amount, status,
         COALESCE(message, ''), COALESCE(rejected_reason, ''), COALESCE(resend_of, ''),
         created_at, updated_at
         FROM settlements WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.GroupID, &s.FromUserID, &s.ToUserID, &s.Amount, &s.Status,
		&s.Message, &s.RejectedReason, &s.ResendOf, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %v", err)
	}
	return &s, nil
}

// CreateSettlement saves a settlement record
func (r *LedgerRepository) CreateSettlement(s *models.Settlement) error {
	_, err := r.DB.Exec(
		`INSERT INTO settlements
         (id, group_id, from_user_id, to_user_id, amount, status, message, rejected_reason, resend_of, created_at, updated_at)
         VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`,
		s.ID, s.GroupID, s.FromUserID, s.ToUserID, s.Amount, s.Status,
		s.Message, s.RejectedReason, s.ResendOf, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %v", err)
	}
	return nil
}

// CASUpdateSettlementStatus applies a status transition only if the
// current persisted status still matches. Returns false when the
// conditional write matched no row.
func (r *LedgerRepository) CASUpdateSettlementStatus(id, expectedStatus, newStatus, rejectedReason string) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE settlements
         SET status = $3, rejected_reason = NULLIF($4, ''), updated_at = (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT
         WHERE id = $1 AND status = $2`,
		id, expectedStatus, newStatus, rejectedReason,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update settlement status: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %v", err)
	}
	return affected == 1, nil
}

// ListMemberships retrieves all members of a group
func (r *LedgerRepository) ListMemberships(groupID string) ([]*models.Membership, error) {
	rows, err := r.DB.Query(
		`SELECT group_id, user_id, username, is_admin
         FROM memberships WHERE group_id = $1 ORDER BY user_id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %v", err)
	}
	defer rows.Close()

	var members []*models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Username, &m.IsAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %v", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// GetMembership retrieves one membership, or nil if the user is not a member
func (r *LedgerRepository) GetMembership(groupID, userID string) (*models.Membership, error) {
	var m models.Membership
	err := r.DB.QueryRow(
		`SELECT group_id, user_id, username, is_admin
         FROM memberships WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	).Scan(&m.GroupID, &m.UserID, &m.Username, &m.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %v", err)
	}
	return &m, nil
}

// GetSettlementMode retrieves a user's global adjustment mode; empty when
// the user never set one
func (r *LedgerRepository) GetSettlementMode(userID string) (string, error) {
	var mode string
	err := r.DB.QueryRow(
		"SELECT settlement_mode FROM user_preferences WHERE user_id = $1",
		userID,
	).Scan(&mode)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get settlement mode: %v", err)
	}
	return mode, nil
}

// SetSettlementMode stores a user's global adjustment mode
func (r *LedgerRepository) SetSettlementMode(userID, mode string) error {
	_, err := r.DB.Exec(
		`INSERT INTO user_preferences (user_id, settlement_mode) VALUES ($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET settlement_mode = EXCLUDED.settlement_mode`,
		userID, mode,
	)
	if err != nil {
		return fmt.Errorf("failed to set settlement mode: %v", err)
	}
	return nil
}

func scanSettlements(rows *sql.Rows) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	for rows.Next() {
		var s models.Settlement
		err := rows.Scan(
			&s.ID, &s.GroupID, &s.FromUserID, &s.ToUserID, &s.Amount, &s.Status,
			&s.Message, &s.RejectedReason, &s.ResendOf, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %v", err)
		}
		settlements = append(settlements, &s)
	}
	return settlements, rows.Err()
}
