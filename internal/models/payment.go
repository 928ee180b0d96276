package models

import "time"

// Payment method types and payment statuses.
const (
	MethodCard = "card"
	MethodBlik = "blik"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// MSK transaction types.
const (
	MSKReward   = "reward"
	MSKTransfer = "transfer"
)

// PaymentMethod is a stored payment instrument. Card data beyond the last
// four digits never reaches storage.
type PaymentMethod struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_id"`
	Type      string    `json:"type"`
	CardLast4 *string   `json:"card_last4,omitempty"`
	CardBrand *string   `json:"card_brand,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment is one settlement attempt against a listing. Settlement here is
// simulated: a fixed delay after creation the status flips to completed.
type Payment struct {
	ID              string     `json:"id"`
	UserUID         string     `json:"user_id"`
	ListingID       string     `json:"listing_id"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	PaymentMethodID *string    `json:"payment_method_id,omitempty"`
	TransactionRef  *string    `json:"transaction_ref,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// MSKTransaction is one row of the reward-token ledger.
type MSKTransaction struct {
	ID          string    `json:"id"`
	UserUID     string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	PaymentID   *string   `json:"payment_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyPayment receives the payment form. Only required-field presence is
// checked: card payments need number/expiry/cvv, BLIK needs a 6-digit code.
type DummyPayment struct {
	ListingID  string `json:"listing_id" validate:"required,uuid"`
	Type       string `json:"type" validate:"required,oneof=card blik"`
	CardNumber string `json:"card_number,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	BlikCode   string `json:"blik_code,omitempty" validate:"omitempty,numeric,len=6"`
}
