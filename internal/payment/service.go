package payment

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrCannotPaySelf      = errors.New("cannot record a payment to yourself")
	ErrInvalidAmount      = errors.New("payment amount must be a positive number")
	ErrInvalidReference   = errors.New("reference must be a valid UUID")
	ErrDuplicateReference = errors.New("a payment with this reference already exists")
)

// ActivityRecorder lets the payment service append to the group activity feed
type ActivityRecorder interface {
	RecordPaymentMade(ctx context.Context, groupID, actorID, paymentID int64, amount float64) error
}

// Service handles payment business logic
type Service struct {
	repo     *Repository
	activity ActivityRecorder
}

// NewService creates a new payment service
func NewService(repo *Repository, activity ActivityRecorder) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
	}
}

// Create records a payment from the authenticated user to another member.
// A client-supplied reference UUID makes retries idempotent; submitting the
// same reference twice yields a conflict instead of a double entry.
func (s *Service) Create(ctx context.Context, fromUserID int64, req *CreatePaymentRequest) (*Payment, error) {
	if fromUserID == req.ToUserID {
		return nil, ErrCannotPaySelf
	}
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	reference := uuid.New()
	if req.Reference != "" {
		parsed, err := uuid.Parse(req.Reference)
		if err != nil {
			return nil, ErrInvalidReference
		}
		reference = parsed

		existing, err := s.repo.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateReference
		}
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return nil, errors.New("paid_at must be RFC 3339")
		}
		paidAt = parsed
	}

	payment, err := s.repo.Create(ctx, fromUserID, reference, paidAt, req)
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		// Feed writes are best-effort; the payment itself is already recorded
		_ = s.activity.RecordPaymentMade(ctx, payment.GroupID, fromUserID, payment.ID, payment.Amount)
	}

	return payment, nil
}

// GetByID retrieves a payment by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListByGroupID retrieves payments for a group with pagination
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Delete removes a payment record. Only the user who made the payment can
// delete it.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.FromUserID != userID {
		return errors.New("only the payer can delete a payment")
	}

	return s.repo.Delete(ctx, id)
}
