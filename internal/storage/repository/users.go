package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

const userColumns = `uid, email, password_hash, role, full_name, nip, industry,
	company_description, contact_email, contact_person, phone, phone2,
	facebook_link, instagram_link, tiktok_link, website_link, bank_account,
	logo_url, msk_balance, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName,
		&u.NIP, &u.Industry, &u.CompanyDescription, &u.ContactEmail,
		&u.ContactPerson, &u.Phone, &u.Phone2, &u.FacebookLink,
		&u.InstagramLink, &u.TiktokLink, &u.WebsiteLink, &u.BankAccount,
		&u.LogoURL, &u.MSKBalance, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterUser saves a new user and returns the generated uid.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, role, full_name, nip)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.FullName,
		user.NIP).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail returns a user by e-mail address.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser returns a user by uid.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile overwrites the editable profile fields of a user. The role
// column is intentionally not part of this statement.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = $1, nip = $2, industry = $3,
			      company_description = $4, contact_email = $5,
			      contact_person = $6, phone = $7, phone2 = $8,
			      facebook_link = $9, instagram_link = $10, tiktok_link = $11,
			      website_link = $12, bank_account = $13, updated_at = NOW()
			  WHERE uid = $14`
	result, err := s.DB.ExecContext(ctx, query,
		req.FullName, req.NIP, req.Industry, req.CompanyDescription,
		req.ContactEmail, req.ContactPerson, req.Phone, req.Phone2,
		req.FacebookLink, req.InstagramLink, req.TiktokLink, req.WebsiteLink,
		req.BankAccount, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateLogoURL stores the public URL of an uploaded logo.
func (s *Storage) UpdateLogoURL(ctx context.Context, userUID, logoURL string) error {
	const op = "storage.UpdateLogoURL"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET logo_url = $1, updated_at = NOW() WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, logoURL, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HasAdminToken reports whether the user holds an admin token, which gates
// news authoring.
func (s *Storage) HasAdminToken(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.HasAdminToken"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT 1 FROM admin_tokens WHERE user_uid = $1 LIMIT 1`
	var one int
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
