package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
)

// BookingRepository handles database operations for service bookings
type BookingRepository struct {
	DB *sql.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, booker_id, provider_id, status, currency, total_amount,
	 platform_fee, provider_payout, stripe_payment_intent_id, scheduled_start,
	 scheduled_end, paid_at, auto_release_at, created_at, updated_at`

// GetBookingByID retrieves a booking by its ID
func (r *BookingRepository) GetBookingByID(bookingID string) (*models.Booking, error) {
	row := r.DB.QueryRow(
		`SELECT `+bookingColumns+` FROM service_bookings WHERE id = $1`,
		bookingID,
	)
	return scanBooking(row)
}

// GetBookingDetail retrieves a booking joined with provider, offering and
// venue info for response payloads
func (r *BookingRepository) GetBookingDetail(bookingID string) (*models.BookingDetail, error) {
	var detail models.BookingDetail
	var intentID, providerName, offeringTitle, venueName sql.NullString

	err := r.DB.QueryRow(
		`SELECT b.id, b.booker_id, b.provider_id, b.status, b.currency, b.total_amount,
		        b.platform_fee, b.provider_payout, b.stripe_payment_intent_id,
		        b.scheduled_start, b.scheduled_end, b.paid_at, b.auto_release_at,
		        b.created_at, b.updated_at,
		        u.display_name, o.title, v.name
		 FROM service_bookings b
		 LEFT JOIN users u ON u.id = b.provider_id
		 LEFT JOIN service_offerings o ON o.id = b.offering_id
		 LEFT JOIN venues v ON v.id = b.venue_id
		 WHERE b.id = $1`,
		bookingID,
	).Scan(
		&detail.ID, &detail.BookerID, &detail.ProviderID, &detail.Status,
		&detail.Currency, &detail.TotalAmount, &detail.PlatformFee,
		&detail.ProviderPayout, &intentID, &detail.ScheduledStart,
		&detail.ScheduledEnd, &detail.PaidAt, &detail.AutoReleaseAt,
		&detail.CreatedAt, &detail.UpdatedAt,
		&providerName, &offeringTitle, &venueName,
	)
	if err != nil {
		return nil, err
	}

	if intentID.Valid {
		detail.StripePaymentIntentID = intentID.String
	}
	if providerName.Valid {
		detail.ProviderName = providerName.String
	}
	if offeringTitle.Valid {
		detail.OfferingTitle = offeringTitle.String
	}
	if venueName.Valid {
		detail.VenueName = venueName.String
	}

	return &detail, nil
}

// UpdateBookingIntent persists a freshly created payment intent on the booking
func (r *BookingRepository) UpdateBookingIntent(bookingID, intentID, currency string) error {
	_, err := r.DB.Exec(
		`UPDATE service_bookings
		 SET stripe_payment_intent_id = $1, currency = $2, updated_at = NOW()
		 WHERE id = $3`,
		intentID, currency, bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking intent: %v", err)
	}
	return nil
}

// MarkBookingPaid transitions a booking to paid and starts the escrow clock
func (r *BookingRepository) MarkBookingPaid(bookingID, intentID string, paidAt time.Time, autoReleaseAt *time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE service_bookings
		 SET status = 'paid', paid_at = $1, stripe_payment_intent_id = $2,
		     auto_release_at = $3, updated_at = NOW()
		 WHERE id = $4`,
		paidAt, intentID, autoReleaseAt, bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %v", err)
	}
	return nil
}

// CountCompletedBookings counts a provider's completed bookings, used by the
// trust-escalation rule for the escrow hold period
func (r *BookingRepository) CountCompletedBookings(providerID string) (int, error) {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM service_bookings WHERE provider_id = $1 AND status = 'completed'",
		providerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed bookings: %v", err)
	}
	return count, nil
}

// AppendActivity inserts one booking activity row
func (r *BookingRepository) AppendActivity(activity *models.BookingActivity) error {
	_, err := r.DB.Exec(
		`INSERT INTO booking_activity (id, booking_id, activity_type, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		activity.ID, activity.BookingID, activity.ActivityType, activity.Metadata, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking activity: %v", err)
	}
	return nil
}

func scanBooking(row *sql.Row) (*models.Booking, error) {
	var booking models.Booking
	var intentID sql.NullString

	err := row.Scan(
		&booking.ID, &booking.BookerID, &booking.ProviderID, &booking.Status,
		&booking.Currency, &booking.TotalAmount, &booking.PlatformFee,
		&booking.ProviderPayout, &intentID, &booking.ScheduledStart,
		&booking.ScheduledEnd, &booking.PaidAt, &booking.AutoReleaseAt,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if intentID.Valid {
		booking.StripePaymentIntentID = intentID.String
	}

	return &booking, nil
}
