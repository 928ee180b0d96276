// Package models contains the domain structures of the classifieds service
// and the helper types used to receive data from JSON requests.
package models

import "time"

// User roles. A role is assigned at registration and never changes.
const (
	RoleResident = "mieszkaniec"
	RoleBusiness = "przedsiebiorca"
)

// User represents a registered account with its public company profile.
// Pointer fields are optional and map to NULL columns.
type User struct {
	UID                string     `json:"id"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               string     `json:"user_type"`
	FullName           string     `json:"full_name"`
	NIP                *string    `json:"nip,omitempty"`
	Industry           *string    `json:"industry,omitempty"`
	CompanyDescription *string    `json:"company_description,omitempty"`
	ContactEmail       *string    `json:"contact_email,omitempty"`
	ContactPerson      *string    `json:"contact_person,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Phone2             *string    `json:"phone2,omitempty"`
	FacebookLink       *string    `json:"facebook_link,omitempty"`
	InstagramLink      *string    `json:"instagram_link,omitempty"`
	TiktokLink         *string    `json:"tiktok_link,omitempty"`
	WebsiteLink        *string    `json:"website_link,omitempty"`
	BankAccount        *string    `json:"bank_account,omitempty"`
	LogoURL            *string    `json:"logo_url,omitempty"`
	MSKBalance         float64    `json:"msk_balance"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// OwnerInfo is the subset of the owner's profile attached to a listing.
type OwnerInfo struct {
	FullName           string  `json:"full_name"`
	ContactEmail       *string `json:"contact_email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	Industry           *string `json:"industry,omitempty"`
}

// DummyProfile receives profile updates from a JSON request. The role is
// deliberately absent: it is immutable after registration.
type DummyProfile struct {
	FullName           string  `json:"full_name" validate:"required,min=2,max=200"`
	NIP                *string `json:"nip,omitempty" validate:"omitempty,numeric,len=10"`
	Industry           *string `json:"industry,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	ContactEmail       *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPerson      *string `json:"contact_person,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Phone2             *string `json:"phone2,omitempty"`
	FacebookLink       *string `json:"facebook_link,omitempty"`
	InstagramLink      *string `json:"instagram_link,omitempty"`
	TiktokLink         *string `json:"tiktok_link,omitempty"`
	WebsiteLink        *string `json:"website_link,omitempty"`
	BankAccount        *string `json:"bank_account,omitempty"`
}
