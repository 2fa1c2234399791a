package services

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/soundbridge/soundbridge-backend/gateway"
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// BookingStore handles booking persistence
type BookingStore interface {
	GetBookingByID(bookingID string) (*models.Booking, error)
	GetBookingDetail(bookingID string) (*models.BookingDetail, error)
	UpdateBookingIntent(bookingID, intentID, currency string) error
	MarkBookingPaid(bookingID, intentID string, paidAt time.Time, autoReleaseAt *time.Time) error
	CountCompletedBookings(providerID string) (int, error)
	AppendActivity(activity *models.BookingActivity) error
}

// LedgerStore handles the append-only booking ledger
type LedgerStore interface {
	AppendEntries(entries []*models.LedgerEntry) error
	ListEntries(bookingID string) ([]*models.LedgerEntry, error)
}

// ConnectStore looks up provider payment sub-accounts
type ConnectStore interface {
	GetByProviderID(providerID string) (*models.ConnectAccount, error)
}

// BookingPaymentService orchestrates the booking payment lifecycle: intent
// issue/reuse, payment confirmation and the escrow hold clock
type BookingPaymentService struct {
	bookings BookingStore
	ledger   LedgerStore
	connect  ConnectStore
	gw       gateway.PaymentGateway
	notifier Notifier
}

// NewBookingPaymentService creates a new booking payment service
func NewBookingPaymentService(bookings BookingStore, ledger LedgerStore, connect ConnectStore, gw gateway.PaymentGateway, notifier Notifier) *BookingPaymentService {
	return &BookingPaymentService{
		bookings: bookings,
		ledger:   ledger,
		connect:  connect,
		gw:       gw,
		notifier: notifier,
	}
}

// IssuePaymentIntent returns a client-usable payment authorization for a
// booking awaiting payment, creating a new intent only if no usable one
// exists. Reuse is an optimization: a reused intent that can no longer be
// retrieved degrades to creating a fresh one.
func (s *BookingPaymentService) IssuePaymentIntent(bookingID, callerID string) (*models.PaymentIntentResponse, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Booking")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	if booking.BookerID != callerID {
		return nil, utils.NewForbiddenError(utils.ErrNotBookingOwner)
	}
	if booking.Status != utils.BookingStatusAwaitingPayment {
		return nil, utils.NewConflictError("Booking is not awaiting payment")
	}

	account, err := s.connect.GetByProviderID(booking.ProviderID)
	if err == sql.ErrNoRows {
		return nil, utils.NewConflictError(utils.ErrProviderNotReady)
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if !account.Ready() {
		return nil, utils.NewConflictError(utils.ErrProviderNotReady)
	}

	amountMinor, err := utils.ToMinorUnits(booking.TotalAmount)
	if err != nil {
		return nil, utils.NewUnprocessableError("Invalid booking amount")
	}
	feeMinor := int64(math.Round(booking.PlatformFee * utils.MoneyPrecision))

	// Reuse the existing intent when it is still in a usable state
	if booking.StripePaymentIntentID != "" {
		intent, err := s.gw.GetIntent(booking.StripePaymentIntentID)
		if err != nil {
			log.Printf("Warning: failed to retrieve intent %s, creating a new one: %v",
				booking.StripePaymentIntentID, err)
		} else if intent.Status != gateway.IntentStatusCanceled {
			return &models.PaymentIntentResponse{
				PaymentIntentID: intent.ID,
				ClientSecret:    intent.ClientSecret,
				Status:          intent.Status,
			}, nil
		}
	}

	intent, err := s.gw.CreateIntent(gateway.CreateIntentParams{
		Amount:               amountMinor,
		Currency:             booking.Currency,
		ApplicationFeeAmount: feeMinor,
		DestinationAccountID: account.StripeAccountID,
		Metadata: map[string]string{
			"booking_id":  booking.ID,
			"booker_id":   booking.BookerID,
			"provider_id": booking.ProviderID,
		},
	})
	if err != nil {
		return nil, utils.NewInternalError("Failed to create payment intent")
	}

	if err := s.bookings.UpdateBookingIntent(booking.ID, intent.ID, booking.Currency); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	if err := s.bookings.AppendActivity(&models.BookingActivity{
		ID:           utils.GenerateID(),
		BookingID:    booking.ID,
		ActivityType: "payment_intent_created",
		Metadata:     fmt.Sprintf(`{"payment_intent_id":%q}`, intent.ID),
		CreatedAt:    time.Now(),
	}); err != nil {
		log.Printf("Warning: failed to record payment_intent_created activity: %v", err)
	}

	return &models.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
	}, nil
}

// ConfirmPayment transitions a booking to paid once the gateway reports the
// funds are authorized, and starts the escrow hold-period clock. Duplicate
// confirmations are rejected rather than silently accepted so ledger entries
// are written at most once.
func (s *BookingPaymentService) ConfirmPayment(bookingID, intentID, callerID string) (*models.ConfirmPaymentResponse, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Booking")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	if booking.BookerID != callerID {
		return nil, utils.NewForbiddenError(utils.ErrNotBookingOwner)
	}
	if booking.IsTerminal() {
		return nil, utils.NewConflictError("Booking already " + booking.Status)
	}
	if booking.Status == utils.BookingStatusPaid {
		return nil, utils.NewConflictError("Booking already paid")
	}

	intent, err := s.gw.GetIntent(intentID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to verify payment intent")
	}
	switch intent.Status {
	case gateway.IntentStatusSucceeded, gateway.IntentStatusRequiresCapture, gateway.IntentStatusProcessing:
		// funds authorized
	default:
		return nil, utils.NewConflictErrorWithDetails("Payment not completed", "intent status: "+intent.Status)
	}

	holdDays := utils.DefaultHoldDays
	completed, err := s.bookings.CountCompletedBookings(booking.ProviderID)
	if err != nil {
		log.Printf("Warning: failed to count completed bookings for %s: %v", booking.ProviderID, err)
	} else if completed >= utils.TrustedBookingThreshold {
		holdDays = utils.TrustedHoldDays
	}

	now := time.Now()
	autoReleaseAt := autoReleaseTime(booking, now, holdDays)

	if err := s.bookings.MarkBookingPaid(booking.ID, intent.ID, now, autoReleaseAt); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	// Money has moved at the gateway; bookkeeping failures from here on are
	// logged, never surfaced, so clients do not retry a paid operation.
	if err := s.bookings.AppendActivity(&models.BookingActivity{
		ID:           utils.GenerateID(),
		BookingID:    booking.ID,
		ActivityType: "status_changed_paid",
		Metadata:     fmt.Sprintf(`{"payment_intent_id":%q}`, intent.ID),
		CreatedAt:    now,
	}); err != nil {
		log.Printf("Warning: failed to record status_changed_paid activity: %v", err)
	}

	if err := s.ledger.AppendEntries(paymentLedgerEntries(booking, intent.ID, now)); err != nil {
		log.Printf("Warning: failed to write ledger entries for booking %s: %v", booking.ID, err)
	}

	booking.Status = utils.BookingStatusPaid
	booking.PaidAt = &now
	booking.AutoReleaseAt = autoReleaseAt
	booking.StripePaymentIntentID = intent.ID

	detail, err := s.bookings.GetBookingDetail(booking.ID)
	if err != nil {
		log.Printf("Warning: failed to hydrate booking %s: %v", booking.ID, err)
		detail = &models.BookingDetail{Booking: *booking}
	}

	if err := s.notifier.NotifyPaymentReceived(booking.ProviderID, booking.ID, booking.TotalAmount, booking.Currency); err != nil {
		log.Printf("Warning: failed to queue payment-received notification: %v", err)
	}

	return &models.ConfirmPaymentResponse{
		Booking:             detail,
		PaymentIntentStatus: intent.Status,
	}, nil
}

// GetBooking returns a hydrated booking visible to its booker or provider
func (s *BookingPaymentService) GetBooking(bookingID, callerID string) (*models.BookingDetail, error) {
	detail, err := s.bookings.GetBookingDetail(bookingID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Booking")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if detail.BookerID != callerID && detail.ProviderID != callerID {
		return nil, utils.NewForbiddenError(utils.ErrNotBookingOwner)
	}
	return detail, nil
}

// GetLedger returns the ledger entries for a booking visible to its booker or
// provider
func (s *BookingPaymentService) GetLedger(bookingID, callerID string) ([]*models.LedgerEntry, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Booking")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if booking.BookerID != callerID && booking.ProviderID != callerID {
		return nil, utils.NewForbiddenError(utils.ErrNotBookingOwner)
	}

	entries, err := s.ledger.ListEntries(bookingID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return entries, nil
}

// autoReleaseTime computes the escrow release timestamp: scheduled end,
// falling back to scheduled start, falling back to now, plus the hold period
func autoReleaseTime(booking *models.Booking, now time.Time, holdDays int) *time.Time {
	base := now
	if booking.ScheduledEnd != nil {
		base = *booking.ScheduledEnd
	} else if booking.ScheduledStart != nil {
		base = *booking.ScheduledStart
	}
	release := base.AddDate(0, 0, holdDays)
	return &release
}

// paymentLedgerEntries builds the three audit rows written when a booking is
// paid: the full charge, the reserved platform fee and the pending payout
func paymentLedgerEntries(booking *models.Booking, intentID string, now time.Time) []*models.LedgerEntry {
	entry := func(entryType string, amount float64) *models.LedgerEntry {
		return &models.LedgerEntry{
			ID:              utils.GenerateID(),
			BookingID:       booking.ID,
			EntryType:       entryType,
			Amount:          utils.Round(amount),
			Currency:        booking.Currency,
			PaymentIntentID: intentID,
			CreatedAt:       now,
		}
	}
	return []*models.LedgerEntry{
		entry(utils.LedgerChargeCaptured, booking.TotalAmount),
		entry(utils.LedgerPlatformFeeReserved, booking.PlatformFee),
		entry(utils.LedgerPayoutPending, booking.ProviderPayout),
	}
}
