// Package payment contains the simulated checkout: a payment is created
// pending and settles after a fixed delay, crediting MSK reward tokens.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/city-classifieds/internal/config"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Validation errors for the payment form.
var (
	ErrMissingCardFields = errors.New("card payments need card_number, expiry_date and cvv")
	ErrMissingBlikCode   = errors.New("blik payments need a 6-digit blik_code")
	ErrListingNotPayable = errors.New("listing has no price")
)

// Repository is the storage contract for payments and the token ledger.
type Repository interface {
	CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (string, error)
	CreatePayment(ctx context.Context, p models.Payment) (string, error)
	CompletePayment(ctx context.Context, id string) (int, error)
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
	CreateMSKReward(ctx context.Context, userUID, paymentID string, amount float64, description string) (string, error)
}

// ListingReader resolves the paid listing for its price and title.
type ListingReader interface {
	ReadListing(ctx context.Context, id string) (*models.Listing, error)
}

// Notifier delivers a notification to a user.
type Notifier interface {
	Notify(ctx context.Context, userUID, kind, title, content, link string) error
}

// Service implements the simulated payment flow.
type Service struct {
	repo     Repository
	listings ListingReader
	notifier Notifier
	cfg      config.Payments
	log      *slog.Logger
}

// New creates a payment Service.
func New(repo Repository, listings ListingReader, notifier Notifier, cfg config.Payments, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		listings: listings,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Create validates the payment form, stores the instrument and a pending
// payment, and schedules the simulated settlement. Card data beyond the
// last four digits is discarded immediately.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyPayment) (*models.Payment, error) {
	switch req.Type {
	case models.MethodCard:
		if req.CardNumber == "" || req.ExpiryDate == "" || req.CVV == "" {
			return nil, ErrMissingCardFields
		}
	case models.MethodBlik:
		if req.BlikCode == "" {
			return nil, ErrMissingBlikCode
		}
	default:
		return nil, fmt.Errorf("unknown payment type: %s", req.Type)
	}

	listing, err := s.listings.ReadListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Price == nil || *listing.Price <= 0 {
		return nil, ErrListingNotPayable
	}
	amount := *listing.Price

	pm := models.PaymentMethod{
		UserUID: userUID,
		Type:    req.Type,
	}
	if req.Type == models.MethodCard && len(req.CardNumber) >= 4 {
		last4 := req.CardNumber[len(req.CardNumber)-4:]
		pm.CardLast4 = &last4
	}
	methodID, err := s.repo.CreatePaymentMethod(ctx, pm)
	if err != nil {
		return nil, err
	}

	p := models.Payment{
		UserUID:         userUID,
		ListingID:       req.ListingID,
		Amount:          amount,
		Status:          models.PaymentPending,
		PaymentMethodID: &methodID,
	}
	p.ID, err = s.repo.CreatePayment(ctx, p)
	if err != nil {
		return nil, err
	}
	ref := uuid.NewString()
	p.TransactionRef = &ref

	go s.settle(p, listing.Title)

	s.log.Info("created pending payment",
		slog.String("id", p.ID), slog.Float64("amount", amount))
	return &p, nil
}

// List returns the user's payment history.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}

// settle waits the configured delay, completes the payment and credits
// the MSK reward. Runs detached from the request context.
func (s *Service) settle(p models.Payment, listingTitle string) {
	time.Sleep(s.cfg.SettleDelay)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.repo.CompletePayment(ctx, p.ID)
	if err != nil {
		s.log.Error("failed to complete payment", slog.String("id", p.ID), sl.Err(err))
		return
	}
	if count == 0 {
		return
	}

	reward := p.Amount * s.cfg.RewardRate
	description := fmt.Sprintf("Nagroda za promowanie ogłoszenia %q", listingTitle)
	if _, err := s.repo.CreateMSKReward(ctx, p.UserUID, p.ID, reward, description); err != nil {
		s.log.Error("failed to credit reward", slog.String("payment_id", p.ID), sl.Err(err))
		return
	}

	if err := s.notifier.Notify(ctx, p.UserUID,
		models.NotificationSystem,
		"Płatność zrealizowana",
		fmt.Sprintf("Płatność %.2f zł została zrealizowana, przyznano %.2f MSK", p.Amount, reward),
		"/payments"); err != nil {
		s.log.Warn("failed to notify payer", sl.Err(err))
	}
	s.log.Info("payment settled",
		slog.String("id", p.ID), slog.Float64("reward", reward))
}
