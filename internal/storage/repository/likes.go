package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// ToggleLike flips the like state of (userUID, listingID). The join-row
// insert/delete and the likes_count update run in one transaction, so the
// counter can never diverge from the join table. Returns the new state.
func (s *Storage) ToggleLike(ctx context.Context, userUID, listingID string) (*models.LikeResult, error) {
	const op = "storage.ToggleLike"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var likeID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM likes WHERE user_uid = $1 AND listing_id = $2`,
		userUID, listingID).Scan(&likeID)

	var result models.LikeResult
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO likes (user_uid, listing_id) VALUES ($1, $2)`,
			userUID, listingID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = tx.QueryRowContext(ctx,
			`UPDATE listings SET likes_count = likes_count + 1
			 WHERE id = $1 RETURNING likes_count`,
			listingID).Scan(&result.LikesCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.Liked = true
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	default:
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM likes WHERE id = $1`, likeID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = tx.QueryRowContext(ctx,
			`UPDATE listings SET likes_count = GREATEST(likes_count - 1, 0)
			 WHERE id = $1 RETURNING likes_count`,
			listingID).Scan(&result.LikesCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.Liked = false
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// IsLiked reports whether userUID has liked listingID.
func (s *Storage) IsLiked(ctx context.Context, userUID, listingID string) (bool, error) {
	const op = "storage.IsLiked"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT 1 FROM likes WHERE user_uid = $1 AND listing_id = $2`
	var one int
	err := s.DB.QueryRowContext(ctx, query, userUID, listingID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// ListLikedListingIDs returns the ids of every listing userUID has liked.
// The feed uses it to mark is_liked on fetched pages.
func (s *Storage) ListLikedListingIDs(ctx context.Context, userUID string) ([]string, error) {
	const op = "storage.ListLikedListingIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT listing_id FROM likes WHERE user_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
