package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new payment into the database
func (r *Repository) Create(ctx context.Context, fromUserID int64, reference uuid.UUID, paidAt time.Time, req *CreatePaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (group_id, from_user_id, to_user_id, amount, method, notes, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, group_id, from_user_id, to_user_id, amount, method, notes, reference, paid_at, created_at
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query,
		req.GroupID, fromUserID, req.ToUserID, req.Amount, req.Method, req.Notes, reference, paidAt,
	).Scan(
		&payment.ID,
		&payment.GroupID,
		&payment.FromUserID,
		&payment.ToUserID,
		&payment.Amount,
		&payment.Method,
		&payment.Notes,
		&payment.Reference,
		&payment.PaidAt,
		&payment.CreatedAt,
	)
	if err != nil {
		// The service checks the reference before inserting, but a concurrent
		// insert can still hit the UNIQUE constraint on reference.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.from_user_id, p.to_user_id, p.amount, p.method, p.notes, p.reference, p.paid_at, p.created_at,
		       fu.name as from_user_name, tu.name as to_user_name
		FROM payments p
		JOIN users fu ON p.from_user_id = fu.id
		JOIN users tu ON p.to_user_id = tu.id
		WHERE p.id = $1
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.GroupID,
		&payment.FromUserID,
		&payment.ToUserID,
		&payment.Amount,
		&payment.Method,
		&payment.Notes,
		&payment.Reference,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.FromUserName,
		&payment.ToUserName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// GetByReference retrieves a payment by its idempotency reference
func (r *Repository) GetByReference(ctx context.Context, reference uuid.UUID) (*Payment, error) {
	query := `
		SELECT id, group_id, from_user_id, to_user_id, amount, method, notes, reference, paid_at, created_at
		FROM payments
		WHERE reference = $1
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query, reference).Scan(
		&payment.ID,
		&payment.GroupID,
		&payment.FromUserID,
		&payment.ToUserID,
		&payment.Amount,
		&payment.Method,
		&payment.Notes,
		&payment.Reference,
		&payment.PaidAt,
		&payment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by reference: %w", err)
	}

	return payment, nil
}

// ListByGroupID retrieves payments for a group with pagination
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Payment, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	// Get payments
	query := `
		SELECT p.id, p.group_id, p.from_user_id, p.to_user_id, p.amount, p.method, p.notes, p.reference, p.paid_at, p.created_at,
		       fu.name as from_user_name, tu.name as to_user_name
		FROM payments p
		JOIN users fu ON p.from_user_id = fu.id
		JOIN users tu ON p.to_user_id = tu.id
		WHERE p.group_id = $1
		ORDER BY p.paid_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.FromUserID,
			&payment.ToUserID,
			&payment.Amount,
			&payment.Method,
			&payment.Notes,
			&payment.Reference,
			&payment.PaidAt,
			&payment.CreatedAt,
			&payment.FromUserName,
			&payment.ToUserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, total, nil
}

// ListAllByGroupID retrieves every payment for a group, oldest first.
// Used when computing group balances, which need the full snapshot.
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID int64) ([]*Payment, error) {
	query := `
		SELECT id, group_id, from_user_id, to_user_id, amount, method, notes, reference, paid_at, created_at
		FROM payments
		WHERE group_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.FromUserID,
			&payment.ToUserID,
			&payment.Amount,
			&payment.Method,
			&payment.Notes,
			&payment.Reference,
			&payment.PaidAt,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

// Delete removes a payment from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM payments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("payment not found")
	}

	return nil
}
