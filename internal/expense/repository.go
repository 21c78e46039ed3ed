package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense into the database
func (r *Repository) CreateExpense(ctx context.Context, payerID int64, spentAt time.Time, req *CreateExpenseRequest) (*Expense, error) {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type, spent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, payer_id, description, amount, split_type, spent_at, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, req.GroupID, payerID, req.Description, req.Amount, req.SplitType, spentAt).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// CreateParticipant inserts one participant share for an expense
func (r *Repository) CreateParticipant(ctx context.Context, expenseID, userID int64, share float64) (*Participant, error) {
	query := `
		INSERT INTO expense_participants (expense_id, user_id, share)
		VALUES ($1, $2, $3)
		RETURNING id, expense_id, user_id, share
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, expenseID, userID, share).Scan(
		&participant.ID,
		&participant.ExpenseID,
		&participant.UserID,
		&participant.Share,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return participant, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.spent_at, e.created_at,
		       u.name as payer_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetParticipantsByExpenseID retrieves the share breakdown of an expense
func (r *Repository) GetParticipantsByExpenseID(ctx context.Context, expenseID int64) ([]*Participant, error) {
	query := `
		SELECT ep.id, ep.expense_id, ep.user_id, ep.share, u.name as user_name
		FROM expense_participants ep
		JOIN users u ON ep.user_id = u.id
		WHERE ep.expense_id = $1
		ORDER BY ep.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.ExpenseID,
			&participant.UserID,
			&participant.Share,
			&participant.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// ListExpensesByGroupID retrieves expenses for a group with pagination
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	// Get expenses
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.spent_at, e.created_at,
		       u.name as payer_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.spent_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListAllByGroupID retrieves every expense for a group, oldest first.
// Used when computing group balances, which need the full snapshot.
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID int64) ([]*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.spent_at, e.created_at,
		       u.name as payer_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at ASC, e.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// ListParticipantsByGroupID retrieves every participant share across all
// expenses of a group, in expense insertion order.
func (r *Repository) ListParticipantsByGroupID(ctx context.Context, groupID int64) ([]*Participant, error) {
	query := `
		SELECT ep.id, ep.expense_id, ep.user_id, ep.share, u.name as user_name
		FROM expense_participants ep
		JOIN expenses e ON ep.expense_id = e.id
		JOIN users u ON ep.user_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at ASC, ep.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.ExpenseID,
			&participant.UserID,
			&participant.Share,
			&participant.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// UpdateExpense modifies an existing expense
func (r *Repository) UpdateExpense(ctx context.Context, id int64, req *UpdateExpenseRequest) (*Expense, error) {
	query := `
		UPDATE expenses
		SET description = COALESCE($2, description)
		WHERE id = $1
		RETURNING id, group_id, payer_id, description, amount, split_type, spent_at, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id, req.Description).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense; participant shares cascade
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
