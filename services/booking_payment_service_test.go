package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundbridge/soundbridge-backend/gateway"
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

func newPaymentTestService() (*BookingPaymentService, *fakeBookingStore, *fakeLedgerStore, *fakeConnectStore, *fakeGateway, *fakeNotifier) {
	bookings := newFakeBookingStore()
	ledger := &fakeLedgerStore{}
	connect := &fakeConnectStore{accounts: make(map[string]*models.ConnectAccount)}
	gw := newFakeGateway()
	notifier := &fakeNotifier{}
	service := NewBookingPaymentService(bookings, ledger, connect, gw, notifier)
	return service, bookings, ledger, connect, gw, notifier
}

func testBooking() *models.Booking {
	end := time.Date(2026, 9, 20, 22, 0, 0, 0, time.UTC)
	start := end.Add(-3 * time.Hour)
	return &models.Booking{
		ID:             "booking-1",
		BookerID:       "booker-1",
		ProviderID:     "provider-1",
		Status:         utils.BookingStatusAwaitingPayment,
		Currency:       "GBP",
		TotalAmount:    100.00,
		PlatformFee:    15.00,
		ProviderPayout: 85.00,
		ScheduledStart: &start,
		ScheduledEnd:   &end,
	}
}

func readyAccount() *models.ConnectAccount {
	return &models.ConnectAccount{
		ProviderID:       "provider-1",
		StripeAccountID:  "acct_1",
		ChargesEnabled:   true,
		PayoutsEnabled:   true,
		DetailsSubmitted: true,
	}
}

func TestIssuePaymentIntent_CreatesAndReuses(t *testing.T) {
	service, bookings, _, connect, gw, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	connect.accounts["provider-1"] = readyAccount()

	first, err := service.IssuePaymentIntent("booking-1", "booker-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_fake_1", first.PaymentIntentID)
	assert.NotEmpty(t, first.ClientSecret)
	assert.Equal(t, 1, gw.createCalls)

	// The intent id must be persisted on the booking
	assert.Equal(t, "pi_fake_1", bookings.bookings["booking-1"].StripePaymentIntentID)

	// A retried request reuses the live intent instead of creating another
	second, err := service.IssuePaymentIntent("booking-1", "booker-1")
	require.NoError(t, err)
	assert.Equal(t, first.PaymentIntentID, second.PaymentIntentID)
	assert.Equal(t, 1, gw.createCalls)
}

func TestIssuePaymentIntent_CanceledIntentReplaced(t *testing.T) {
	service, bookings, _, connect, gw, _ := newPaymentTestService()
	booking := testBooking()
	booking.StripePaymentIntentID = "pi_old"
	bookings.bookings["booking-1"] = booking
	connect.accounts["provider-1"] = readyAccount()
	gw.intents["pi_old"] = &gateway.Intent{ID: "pi_old", Status: gateway.IntentStatusCanceled}

	response, err := service.IssuePaymentIntent("booking-1", "booker-1")
	require.NoError(t, err)
	assert.NotEqual(t, "pi_old", response.PaymentIntentID)
	assert.Equal(t, 1, gw.createCalls)
}

func TestIssuePaymentIntent_IrretrievableIntentReplaced(t *testing.T) {
	service, bookings, _, connect, _, _ := newPaymentTestService()
	booking := testBooking()
	booking.StripePaymentIntentID = "pi_gone"
	bookings.bookings["booking-1"] = booking
	connect.accounts["provider-1"] = readyAccount()

	// Reuse is an optimization, not a correctness requirement
	response, err := service.IssuePaymentIntent("booking-1", "booker-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_fake_1", response.PaymentIntentID)
}

func TestIssuePaymentIntent_ProviderNotOnboarded(t *testing.T) {
	service, bookings, _, connect, gw, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	account := readyAccount()
	account.PayoutsEnabled = false
	connect.accounts["provider-1"] = account

	_, err := service.IssuePaymentIntent("booking-1", "booker-1")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	// No gateway-side intent may be created
	assert.Equal(t, 0, gw.createCalls)
}

func TestIssuePaymentIntent_Preconditions(t *testing.T) {
	service, bookings, _, connect, _, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	connect.accounts["provider-1"] = readyAccount()

	_, err := service.IssuePaymentIntent("missing", "booker-1")
	appErr := err.(*utils.AppError)
	assert.Equal(t, 404, appErr.Code)

	_, err = service.IssuePaymentIntent("booking-1", "someone-else")
	appErr = err.(*utils.AppError)
	assert.Equal(t, 403, appErr.Code)

	bookings.bookings["booking-1"].Status = utils.BookingStatusPaid
	_, err = service.IssuePaymentIntent("booking-1", "booker-1")
	appErr = err.(*utils.AppError)
	assert.Equal(t, 409, appErr.Code)
}

func TestIssuePaymentIntent_InvalidAmount(t *testing.T) {
	service, bookings, _, connect, _, _ := newPaymentTestService()
	booking := testBooking()
	booking.TotalAmount = 0
	bookings.bookings["booking-1"] = booking
	connect.accounts["provider-1"] = readyAccount()

	_, err := service.IssuePaymentIntent("booking-1", "booker-1")
	appErr := err.(*utils.AppError)
	assert.Equal(t, 422, appErr.Code)
}

func TestConfirmPayment_HappyPath(t *testing.T) {
	service, bookings, ledger, _, gw, notifier := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusSucceeded}

	response, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.NoError(t, err)

	assert.Equal(t, gateway.IntentStatusSucceeded, response.PaymentIntentStatus)
	assert.Equal(t, utils.BookingStatusPaid, response.Booking.Status)
	assert.NotNil(t, response.Booking.PaidAt)

	// Fee-split invariant: three ledger rows reconciling to the total
	entries, _ := ledger.ListEntries("booking-1")
	require.Len(t, entries, 3)

	amounts := map[string]float64{}
	for _, entry := range entries {
		amounts[entry.EntryType] = entry.Amount
		assert.Equal(t, "pi_1", entry.PaymentIntentID)
		assert.Equal(t, "GBP", entry.Currency)
	}
	assert.Equal(t, 100.00, amounts[utils.LedgerChargeCaptured])
	assert.Equal(t, 15.00, amounts[utils.LedgerPlatformFeeReserved])
	assert.Equal(t, 85.00, amounts[utils.LedgerPayoutPending])
	assert.Equal(t, amounts[utils.LedgerChargeCaptured],
		amounts[utils.LedgerPlatformFeeReserved]+amounts[utils.LedgerPayoutPending])

	assert.Equal(t, 1, notifier.paymentReceived)
}

func TestConfirmPayment_TerminalStatusRejected(t *testing.T) {
	for _, status := range []string{
		utils.BookingStatusCompleted,
		utils.BookingStatusCancelled,
		utils.BookingStatusDisputed,
	} {
		service, bookings, ledger, _, gw, _ := newPaymentTestService()
		booking := testBooking()
		booking.Status = status
		bookings.bookings["booking-1"] = booking
		gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusSucceeded}

		_, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
		require.Error(t, err, "status %s", status)
		appErr := err.(*utils.AppError)
		assert.Equal(t, 409, appErr.Code, "status %s", status)

		// No writes may happen on a rejected confirmation
		assert.Equal(t, 0, bookings.markPaidCalls, "status %s", status)
		assert.Empty(t, ledger.entries, "status %s", status)
	}
}

func TestConfirmPayment_DuplicateRejected(t *testing.T) {
	service, bookings, ledger, _, gw, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusSucceeded}

	_, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.NoError(t, err)

	// Re-confirmation is rejected so ledger entries are written at most once
	_, err = service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.Error(t, err)
	appErr := err.(*utils.AppError)
	assert.Equal(t, 409, appErr.Code)

	entries, _ := ledger.ListEntries("booking-1")
	assert.Len(t, entries, 3)
}

func TestConfirmPayment_PaymentNotCompleted(t *testing.T) {
	service, bookings, _, _, gw, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusRequiresPaymentMethod}

	_, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.Error(t, err)
	appErr := err.(*utils.AppError)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Details, gateway.IntentStatusRequiresPaymentMethod)
}

func TestConfirmPayment_HoldPeriodEscalation(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		holdDays  int
	}{
		{"new provider gets 14 days", 0, 14},
		{"two completed bookings keep 14 days", 2, 14},
		{"three completed bookings reduce to 7 days", 3, 7},
		{"established provider gets 7 days", 10, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, bookings, _, _, gw, _ := newPaymentTestService()
			booking := testBooking()
			bookings.bookings["booking-1"] = booking
			bookings.completedCount["provider-1"] = tc.completed
			gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusRequiresCapture}

			_, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
			require.NoError(t, err)

			// The hold clock runs from the scheduled end
			require.NotNil(t, bookings.lastRelease)
			expected := booking.ScheduledEnd.AddDate(0, 0, tc.holdDays)
			assert.Equal(t, expected, *bookings.lastRelease)
		})
	}
}

func TestConfirmPayment_HoldFallsBackToScheduledStart(t *testing.T) {
	service, bookings, _, _, gw, _ := newPaymentTestService()
	booking := testBooking()
	booking.ScheduledEnd = nil
	bookings.bookings["booking-1"] = booking
	gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusSucceeded}

	_, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.NoError(t, err)

	require.NotNil(t, bookings.lastRelease)
	expected := booking.ScheduledStart.AddDate(0, 0, 14)
	assert.Equal(t, expected, *bookings.lastRelease)
}

func TestConfirmPayment_HydrationFailureFallsBack(t *testing.T) {
	service, bookings, _, _, gw, _ := newPaymentTestService()
	bookings.bookings["booking-1"] = testBooking()
	bookings.detailErr = assert.AnError
	gw.intents["pi_1"] = &gateway.Intent{ID: "pi_1", Status: gateway.IntentStatusSucceeded}

	// Hydration is best-effort; the un-joined booking is returned instead
	response, err := service.ConfirmPayment("booking-1", "pi_1", "booker-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", response.Booking.ID)
	assert.Equal(t, utils.BookingStatusPaid, response.Booking.Status)
	assert.Empty(t, response.Booking.ProviderName)
}
