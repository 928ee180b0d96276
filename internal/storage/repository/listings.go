package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// CreateListing inserts a new listing and returns its id.
func (s *Storage) CreateListing(ctx context.Context, l models.Listing) (string, error) {
	const op = "storage.CreateListing"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO listings (title, description, category, location,
			      price, user_uid, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		l.Title, l.Description, l.Category, l.Location, l.Price,
		l.UserUID, l.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadListing returns one listing together with its owner's public fields.
func (s *Storage) ReadListing(ctx context.Context, id string) (*models.Listing, error) {
	const op = "storage.ReadListing"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT l.id, l.title, l.description, l.category, l.location,
			      l.price, l.user_uid, l.status, l.likes_count, l.created_at,
			      l.updated_at, u.full_name, u.contact_email, u.phone,
			      u.company_description, u.industry
			  FROM listings l
			  JOIN users u ON l.user_uid = u.uid
			  WHERE l.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Listing
	var owner models.OwnerInfo
	if err := row.Scan(&result.ID, &result.Title, &result.Description,
		&result.Category, &result.Location, &result.Price, &result.UserUID,
		&result.Status, &result.LikesCount, &result.CreatedAt,
		&result.UpdatedAt, &owner.FullName, &owner.ContactEmail,
		&owner.Phone, &owner.CompanyDescription, &owner.Industry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Owner = &owner
	return &result, nil
}

// UpdateListing overwrites a listing's fields. The WHERE clause pins the
// owner, so a non-owner update affects zero rows.
func (s *Storage) UpdateListing(ctx context.Context, l models.Listing, id, ownerUID string) (int, error) {
	const op = "storage.UpdateListing"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE listings
			  SET title = $1, description = $2, category = $3, location = $4,
			      price = $5, status = $6, updated_at = NOW()
			  WHERE id = $7 AND user_uid = $8`
	result, err := s.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.Category, l.Location, l.Price, l.Status,
		id, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveListing deletes a listing owned by ownerUID and returns the number
// of deleted rows.
func (s *Storage) RemoveListing(ctx context.Context, id, ownerUID string) (int, error) {
	const op = "storage.RemoveListing"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM listings WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListListings returns the active listings matching the filter, in the
// filter's sort order.
func (s *Storage) ListListings(ctx context.Context, f models.ListingFilter) ([]*models.Listing, error) {
	const op = "storage.ListListings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args := buildListingQuery(f)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Listing
	for rows.Next() {
		var item models.Listing
		if err := rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.Category, &item.Location, &item.Price, &item.UserUID,
			&item.Status, &item.LikesCount, &item.CreatedAt,
			&item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListListingsByOwner returns every listing of one owner, newest first.
func (s *Storage) ListListingsByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error) {
	const op = "storage.ListListingsByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, location, price,
			      user_uid, status, likes_count, created_at, updated_at
			  FROM listings
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Listing
	for rows.Next() {
		var item models.Listing
		if err := rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.Category, &item.Location, &item.Price, &item.UserUID,
			&item.Status, &item.LikesCount, &item.CreatedAt,
			&item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
