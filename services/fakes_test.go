package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/soundbridge/soundbridge-backend/gateway"
	"github.com/soundbridge/soundbridge-backend/models"
)

// In-memory fakes for the booking lifecycle collaborators

type fakeBookingStore struct {
	bookings       map[string]*models.Booking
	completedCount map[string]int
	activities     []*models.BookingActivity
	markPaidCalls  int
	lastPaidIntent string
	lastRelease    *time.Time
	detailErr      error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings:       make(map[string]*models.Booking),
		completedCount: make(map[string]int),
	}
}

func (f *fakeBookingStore) GetBookingByID(bookingID string) (*models.Booking, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingStore) GetBookingDetail(bookingID string) (*models.BookingDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.BookingDetail{Booking: *booking, ProviderName: "Test Provider"}, nil
}

func (f *fakeBookingStore) UpdateBookingIntent(bookingID, intentID, currency string) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return sql.ErrNoRows
	}
	booking.StripePaymentIntentID = intentID
	booking.Currency = currency
	return nil
}

func (f *fakeBookingStore) MarkBookingPaid(bookingID, intentID string, paidAt time.Time, autoReleaseAt *time.Time) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return sql.ErrNoRows
	}
	booking.Status = "paid"
	booking.PaidAt = &paidAt
	booking.StripePaymentIntentID = intentID
	booking.AutoReleaseAt = autoReleaseAt
	f.markPaidCalls++
	f.lastPaidIntent = intentID
	f.lastRelease = autoReleaseAt
	return nil
}

func (f *fakeBookingStore) CountCompletedBookings(providerID string) (int, error) {
	return f.completedCount[providerID], nil
}

func (f *fakeBookingStore) AppendActivity(activity *models.BookingActivity) error {
	f.activities = append(f.activities, activity)
	return nil
}

type fakeLedgerStore struct {
	entries []*models.LedgerEntry
}

func (f *fakeLedgerStore) AppendEntries(entries []*models.LedgerEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeLedgerStore) ListEntries(bookingID string) ([]*models.LedgerEntry, error) {
	var result []*models.LedgerEntry
	for _, entry := range f.entries {
		if entry.BookingID == bookingID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (f *fakeLedgerStore) ListAllEntries() ([]*models.LedgerEntry, error) {
	return f.entries, nil
}

type fakeConnectStore struct {
	accounts map[string]*models.ConnectAccount
}

func (f *fakeConnectStore) GetByProviderID(providerID string) (*models.ConnectAccount, error) {
	account, ok := f.accounts[providerID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return account, nil
}

type fakeGateway struct {
	intents     map[string]*gateway.Intent
	createCalls int
	captureErr  error
	transfers   []gateway.CreateTransferParams
	transferErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*gateway.Intent)}
}

func (f *fakeGateway) CreateIntent(params gateway.CreateIntentParams) (*gateway.Intent, error) {
	f.createCalls++
	intent := &gateway.Intent{
		ID:           fmt.Sprintf("pi_fake_%d", f.createCalls),
		ClientSecret: fmt.Sprintf("pi_fake_%d_secret", f.createCalls),
		Status:       gateway.IntentStatusRequiresPaymentMethod,
		Amount:       params.Amount,
		Currency:     params.Currency,
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeGateway) GetIntent(intentID string) (*gateway.Intent, error) {
	intent, ok := f.intents[intentID]
	if !ok {
		return nil, errors.New("no such payment_intent")
	}
	return intent, nil
}

func (f *fakeGateway) CaptureIntent(intentID string) (*gateway.Intent, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	intent, ok := f.intents[intentID]
	if !ok {
		return nil, errors.New("no such payment_intent")
	}
	intent.Status = gateway.IntentStatusSucceeded
	return intent, nil
}

func (f *fakeGateway) CreateTransfer(params gateway.CreateTransferParams) (*gateway.Transfer, error) {
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	f.transfers = append(f.transfers, params)
	return &gateway.Transfer{
		ID:       fmt.Sprintf("tr_fake_%d", len(f.transfers)),
		Amount:   params.Amount,
		Currency: params.Currency,
	}, nil
}

type fakeNotifier struct {
	paymentReceived int
	payoutReleased  int
	reviewPrompts   []string
}

func (f *fakeNotifier) NotifyPaymentReceived(providerID, bookingID string, amount float64, currency string) error {
	f.paymentReceived++
	return nil
}

func (f *fakeNotifier) NotifyPayoutReleased(providerID, projectID string, amount float64, currency string) error {
	f.payoutReleased++
	return nil
}

func (f *fakeNotifier) NotifyReviewPrompt(userID, referenceID string) error {
	f.reviewPrompts = append(f.reviewPrompts, userID)
	return nil
}

type fakeProjectStore struct {
	posts          map[string]*models.OpportunityPost
	projects       map[string]*models.OpportunityProject
	completedCalls int
	lastTransferID string
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		posts:    make(map[string]*models.OpportunityPost),
		projects: make(map[string]*models.OpportunityProject),
	}
}

func (f *fakeProjectStore) GetPostByID(postID string) (*models.OpportunityPost, error) {
	post, ok := f.posts[postID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return post, nil
}

func (f *fakeProjectStore) GetProjectByPostID(postID string) (*models.OpportunityProject, error) {
	project, ok := f.projects[postID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return project, nil
}

func (f *fakeProjectStore) MarkCompleted(postID, projectID, transferID string, completedAt time.Time) error {
	f.completedCalls++
	f.lastTransferID = transferID
	if post, ok := f.posts[postID]; ok {
		post.Status = "completed"
	}
	return nil
}

type creditCall struct {
	userID      string
	currency    string
	amount      float64
	txType      string
	referenceID string
}

type fakeWalletStore struct {
	credits []creditCall
}

func (f *fakeWalletStore) Credit(userID, currency string, amount float64, txType, description, referenceID string) (*models.Wallet, error) {
	f.credits = append(f.credits, creditCall{
		userID:      userID,
		currency:    currency,
		amount:      amount,
		txType:      txType,
		referenceID: referenceID,
	})
	return &models.Wallet{UserID: userID, Currency: currency, Balance: amount}, nil
}
