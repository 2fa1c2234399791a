package utils

const (
	// Booking statuses
	BookingStatusPending          = "pending"
	BookingStatusAwaitingPayment  = "confirmed_awaiting_payment"
	BookingStatusPaid             = "paid"
	BookingStatusCompleted        = "completed"
	BookingStatusCancelled        = "cancelled"
	BookingStatusDisputed         = "disputed"

	// Opportunity post/project statuses
	PostStatusConfirmed = "confirmed"
	PostStatusCompleted = "completed"

	// Ledger entry types
	LedgerChargeCaptured      = "charge_captured"
	LedgerPlatformFeeReserved = "platform_fee_reserved"
	LedgerPayoutPending       = "payout_pending"
	LedgerPayoutReleased      = "payout_released"

	// Wallet transaction types
	WalletTxDeposit    = "deposit"
	WalletTxWithdrawal = "withdrawal"

	// Notification types
	NotificationPaymentReceived = "payment_received"
	NotificationPayoutReleased  = "payout_released"
	NotificationReviewPrompt    = "review_prompt"

	// Escrow hold periods in days
	DefaultHoldDays = 14
	TrustedHoldDays = 7
	// Completed bookings required before the shorter hold applies
	TrustedBookingThreshold = 3

	// HTTP status messages
	ErrInvalidRequest    = "Invalid request"
	ErrBookingNotFound   = "Booking not found"
	ErrGigNotFound       = "Gig not found"
	ErrNotBookingOwner   = "Not authorized for this booking"
	ErrProviderNotReady  = "provider not ready for payouts"
	ErrFailedToStore     = "Failed to store data"
	ErrFailedToRetrieve  = "Failed to retrieve data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)
