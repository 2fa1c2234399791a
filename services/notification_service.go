package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// NotificationStore persists in-app notification rows
type NotificationStore interface {
	Insert(n *models.Notification) error
}

// JobPublisher pushes notification jobs onto the message queue
type JobPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Notifier is the notification surface the booking lifecycle consumes.
// All methods are fire-and-forget from the caller's point of view.
type Notifier interface {
	NotifyPaymentReceived(providerID, bookingID string, amount float64, currency string) error
	NotifyPayoutReleased(providerID, projectID string, amount float64, currency string) error
	NotifyReviewPrompt(userID, referenceID string) error
}

// NotificationService writes notification rows and publishes dispatch jobs
type NotificationService struct {
	store   NotificationStore
	pub     JobPublisher
	baseURL string
}

// NewNotificationService creates a new notification service. A nil publisher
// is tolerated; rows are still written and dispatch is skipped.
func NewNotificationService(store NotificationStore, pub JobPublisher, baseURL string) *NotificationService {
	return &NotificationService{store: store, pub: pub, baseURL: baseURL}
}

// NotifyPaymentReceived tells a provider their booking has been paid
func (s *NotificationService) NotifyPaymentReceived(providerID, bookingID string, amount float64, currency string) error {
	n := &models.Notification{
		ID:          utils.GenerateID(),
		UserID:      providerID,
		Type:        utils.NotificationPaymentReceived,
		Title:       "Payment received",
		Body:        fmt.Sprintf("A booking has been paid: %.2f %s is held in escrow for you.", amount, currency),
		ReferenceID: bookingID,
		ActionURL:   s.baseURL + "/bookings/" + bookingID,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Insert(n); err != nil {
		return err
	}
	s.publish("notify.payment_received", n)
	return nil
}

// NotifyPayoutReleased tells a provider their payout has been released
func (s *NotificationService) NotifyPayoutReleased(providerID, projectID string, amount float64, currency string) error {
	n := &models.Notification{
		ID:          utils.GenerateID(),
		UserID:      providerID,
		Type:        utils.NotificationPayoutReleased,
		Title:       "Payout released",
		Body:        fmt.Sprintf("Your payout of %.2f %s has been released.", amount, currency),
		ReferenceID: projectID,
		ActionURL:   s.baseURL + "/wallet",
		CreatedAt:   time.Now(),
	}
	if err := s.store.Insert(n); err != nil {
		return err
	}
	s.publish("notify.payout_released", n)
	return nil
}

// NotifyReviewPrompt asks a party to leave a review for a finished engagement
func (s *NotificationService) NotifyReviewPrompt(userID, referenceID string) error {
	n := &models.Notification{
		ID:          utils.GenerateID(),
		UserID:      userID,
		Type:        utils.NotificationReviewPrompt,
		Title:       "How did it go?",
		Body:        "Your gig is complete. Leave a review for the other party.",
		ReferenceID: referenceID,
		ActionURL:   s.baseURL + "/gigs/" + referenceID + "/review",
		CreatedAt:   time.Now(),
	}
	if err := s.store.Insert(n); err != nil {
		return err
	}
	s.publish("notify.review_prompt", n)
	return nil
}

func (s *NotificationService) publish(key string, n *models.Notification) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(context.Background(), key, n); err != nil {
		log.Printf("Warning: failed to publish %s job: %v", key, err)
	}
}
