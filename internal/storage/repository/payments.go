package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// CreatePaymentMethod stores a payment instrument and returns its id.
func (s *Storage) CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (string, error) {
	const op = "storage.CreatePaymentMethod"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_methods (user_uid, type, card_last4, card_brand, is_default)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		pm.UserUID, pm.Type, pm.CardLast4, pm.CardBrand, pm.IsDefault).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreatePayment inserts a payment in pending state and returns its id.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (string, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, listing_id, amount, status, payment_method_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.ListingID, p.Amount, p.Status, p.PaymentMethodID).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CompletePayment flips a pending payment to completed and stamps
// completed_at. Returns the number of updated rows.
func (s *Storage) CompletePayment(ctx context.Context, id string) (int, error) {
	const op = "storage.CompletePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = 'completed', completed_at = NOW()
			  WHERE id = $1 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListPayments returns the user's payments, newest first.
func (s *Storage) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, listing_id, amount, status,
			      payment_method_id, transaction_ref, created_at, completed_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ListingID,
			&item.Amount, &item.Status, &item.PaymentMethodID,
			&item.TransactionRef, &item.CreatedAt, &item.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateMSKReward writes a reward row to the token ledger and bumps the
// user's balance in the same transaction.
func (s *Storage) CreateMSKReward(ctx context.Context, userUID, paymentID string, amount float64, description string) (string, error) {
	const op = "storage.CreateMSKReward"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID string
	if err = tx.QueryRowContext(ctx,
		`INSERT INTO msk_transactions (user_uid, amount, type, payment_id, description)
		 VALUES ($1, $2, 'reward', $3, $4)
		 RETURNING id`,
		userUID, amount, paymentID, description).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET msk_balance = msk_balance + $1 WHERE uid = $2`,
		amount, userUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
