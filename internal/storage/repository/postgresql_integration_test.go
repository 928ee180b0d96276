package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

func TestStorage_RegisterAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	nip := "1234567890"
	uid, err := storage.RegisterUser(context.Background(), models.User{
		Email:        "firma@example.com",
		PasswordHash: "hashedpassword",
		Role:         "przedsiebiorca",
		FullName:     "Firma Testowa",
		NIP:          &nip,
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byEmail, err := storage.GetUserByEmail(context.Background(), "firma@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, byEmail.UID)
	assert.Equal(t, "przedsiebiorca", byEmail.Role)
	require.NotNil(t, byEmail.NIP)
	assert.Equal(t, nip, *byEmail.NIP)

	byUID, err := storage.GetUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "Firma Testowa", byUID.FullName)
	assert.Equal(t, 0.0, byUID.MSKBalance)

	_, err = storage.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.Error(t, err)
}

func TestStorage_CreateAndReadListing(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "firma@example.com", "hashedpassword", "przedsiebiorca", "Firma Testowa")

	price := 150.0
	id, err := storage.CreateListing(context.Background(), models.Listing{
		Title:       "Naprawa rowerów",
		Description: "Serwis rowerowy z dojazdem na terenie całego miasta.",
		Category:    "Usługi",
		Location:    "Centrum",
		Price:       &price,
		UserUID:     ownerUID,
		Status:      models.ListingStatusActive,
	})
	require.NoError(t, err)

	got, err := storage.ReadListing(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Naprawa rowerów", got.Title)
	assert.Equal(t, ownerUID, got.UserUID)
	require.NotNil(t, got.Price)
	assert.Equal(t, price, *got.Price)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "Firma Testowa", got.Owner.FullName)
}

func TestStorage_ListListings_Filtering(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "firma@example.com", "hashedpassword", "przedsiebiorca", "Firma Testowa")

	cheap := 50.0
	pricey := 500.0
	factory.CreateListing(t, ownerUID, "Naprawa rowerów", "Usługi", &cheap)
	factory.CreateListing(t, ownerUID, "Kelner na weekend", "Praca", &pricey)
	factory.CreateListing(t, ownerUID, "Korepetycje z matematyki", "Usługi", nil)

	got, err := storage.ListListings(context.Background(), models.ListingFilter{Category: "Usługi"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = storage.ListListings(context.Background(), models.ListingFilter{MaxPrice: &cheap})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Naprawa rowerów", got[0].Title)

	got, err = storage.ListListings(context.Background(), models.ListingFilter{Search: "rower"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Naprawa rowerów", got[0].Title)
}

func TestStorage_ToggleLike(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ownerUID := factory.CreateUser(t, "firma@example.com", "hashedpassword", "przedsiebiorca", "Firma Testowa")
	viewerUID := factory.CreateUser(t, "jan@example.com", "hashedpassword", "mieszkaniec", "Jan Kowalski")
	listingID := factory.CreateListing(t, ownerUID, "Naprawa rowerów", "Usługi", nil)

	result, err := storage.ToggleLike(context.Background(), viewerUID, listingID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikesCount)
	verify.VerifyLikesCount(t, listingID, 1)
	verify.VerifyLikeRows(t, viewerUID, listingID, 1)

	liked, err := storage.IsLiked(context.Background(), viewerUID, listingID)
	require.NoError(t, err)
	assert.True(t, liked)

	result, err = storage.ToggleLike(context.Background(), viewerUID, listingID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikesCount)
	verify.VerifyLikesCount(t, listingID, 0)
	verify.VerifyLikeRows(t, viewerUID, listingID, 0)
}

func TestStorage_ListMessagesForUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	aliceUID := factory.CreateUser(t, "alice@example.com", "hashedpassword", "mieszkaniec", "Alicja Nowak")
	bobUID := factory.CreateUser(t, "bob@example.com", "hashedpassword", "mieszkaniec", "Bob Wiśniewski")
	carolUID := factory.CreateUser(t, "carol@example.com", "hashedpassword", "mieszkaniec", "Karolina Lis")

	factory.CreateMessage(t, aliceUID, bobUID, "cześć Bob")
	factory.CreateMessage(t, bobUID, aliceUID, "cześć Alicja")
	factory.CreateMessage(t, bobUID, carolUID, "cześć Karolina")

	got, err := storage.ListMessagesForUser(context.Background(), aliceUID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, m := range got {
		assert.True(t, m.SenderUID == aliceUID || m.RecipientUID == aliceUID)
		assert.NotEmpty(t, m.SenderName)
		assert.NotEmpty(t, m.RecipientName)
	}
}

func TestStorage_HasAdminToken(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	adminUID := factory.CreateUser(t, "admin@example.com", "hashedpassword", "mieszkaniec", "Admin Miejski")
	plainUID := factory.CreateUser(t, "jan@example.com", "hashedpassword", "mieszkaniec", "Jan Kowalski")
	factory.CreateAdminToken(t, adminUID)

	has, err := storage.HasAdminToken(context.Background(), adminUID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = storage.HasAdminToken(context.Background(), plainUID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStorage_PaymentLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "firma@example.com", "hashedpassword", "przedsiebiorca", "Firma Testowa")
	buyerUID := factory.CreateUser(t, "jan@example.com", "hashedpassword", "mieszkaniec", "Jan Kowalski")
	price := 100.0
	listingID := factory.CreateListing(t, ownerUID, "Naprawa rowerów", "Usługi", &price)

	last4 := "4242"
	methodID, err := storage.CreatePaymentMethod(context.Background(), models.PaymentMethod{
		UserUID:   buyerUID,
		Type:      models.MethodCard,
		CardLast4: &last4,
	})
	require.NoError(t, err)

	ref := "txn-1"
	paymentID, err := storage.CreatePayment(context.Background(), models.Payment{
		UserUID:         buyerUID,
		ListingID:       listingID,
		Amount:          price,
		Status:          models.PaymentPending,
		PaymentMethodID: &methodID,
		TransactionRef:  &ref,
	})
	require.NoError(t, err)

	rows, err := storage.CompletePayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	// a second completion must not match the already completed row
	rows, err = storage.CompletePayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	rewardID, err := storage.CreateMSKReward(context.Background(), buyerUID, paymentID, 10.0,
		"Zwrot 10% w tokenach MSK")
	require.NoError(t, err)
	assert.NotEmpty(t, rewardID)

	buyer, err := storage.GetUser(context.Background(), buyerUID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, buyer.MSKBalance)

	payments, err := storage.ListPayments(context.Background(), buyerUID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentCompleted, payments[0].Status)
	assert.NotNil(t, payments[0].CompletedAt)
}
