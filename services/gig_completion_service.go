package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/soundbridge/soundbridge-backend/gateway"
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// ProjectStore handles opportunity posts and their linked projects
type ProjectStore interface {
	GetPostByID(postID string) (*models.OpportunityPost, error)
	GetProjectByPostID(postID string) (*models.OpportunityProject, error)
	MarkCompleted(postID, projectID, transferID string, completedAt time.Time) error
}

// WalletStore credits provider wallets
type WalletStore interface {
	Credit(userID, currency string, amount float64, txType, description, referenceID string) (*models.Wallet, error)
}

// GigCompletionService finalizes a paid engagement: captures funds, transfers
// the provider's share, credits the internal wallet and prompts for reviews
type GigCompletionService struct {
	projects ProjectStore
	wallets  WalletStore
	connect  ConnectStore
	gw       gateway.PaymentGateway
	notifier Notifier
}

// NewGigCompletionService creates a new gig completion service
func NewGigCompletionService(projects ProjectStore, wallets WalletStore, connect ConnectStore, gw gateway.PaymentGateway, notifier Notifier) *GigCompletionService {
	return &GigCompletionService{
		projects: projects,
		wallets:  wallets,
		connect:  connect,
		gw:       gw,
		notifier: notifier,
	}
}

// CompleteGig releases a gig's payout. Capture is idempotent: an intent the
// gateway reports as already succeeded is treated as captured. Once funds have
// moved, every remaining step is best-effort; failures are logged and the
// completion is not rolled back.
func (s *GigCompletionService) CompleteGig(postID, callerID string) (*models.ReleasedPayout, error) {
	post, err := s.projects.GetPostByID(postID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Gig")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	if callerID != post.RequesterID && callerID != post.SelectedProviderID {
		return nil, utils.NewForbiddenError("Not authorized for this gig")
	}
	if post.Status != utils.PostStatusConfirmed {
		return nil, utils.NewBadRequestError("Gig is not in a completable state")
	}

	project, err := s.projects.GetProjectByPostID(postID)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Project")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	if project.PaymentIntentID != "" {
		if err := s.captureIntent(project.PaymentIntentID); err != nil {
			return nil, err
		}
	}

	transferID := s.transferPayout(project)

	now := time.Now()
	if err := s.projects.MarkCompleted(post.ID, project.ID, transferID, now); err != nil {
		log.Printf("Warning: failed to mark gig %s completed: %v", post.ID, err)
	}

	_, err = s.wallets.Credit(project.ProviderID, project.Currency,
		project.CreatorPayoutAmount, utils.WalletTxDeposit,
		"Payout for completed gig", project.ID)
	if err != nil {
		log.Printf("Warning: failed to credit wallet for project %s: %v", project.ID, err)
	}

	if err := s.notifier.NotifyPayoutReleased(project.ProviderID, project.ID, project.CreatorPayoutAmount, project.Currency); err != nil {
		log.Printf("Warning: failed to queue payout-released notification: %v", err)
	}
	if err := s.notifier.NotifyReviewPrompt(project.ProviderID, post.ID); err != nil {
		log.Printf("Warning: failed to queue provider review prompt: %v", err)
	}
	if err := s.notifier.NotifyReviewPrompt(post.RequesterID, post.ID); err != nil {
		log.Printf("Warning: failed to queue requester review prompt: %v", err)
	}

	return &models.ReleasedPayout{
		ReleasedAmount: project.CreatorPayoutAmount,
		Currency:       project.Currency,
	}, nil
}

// captureIntent captures the project's payment intent, tolerating an intent
// the gateway already captured on a prior attempt
func (s *GigCompletionService) captureIntent(intentID string) error {
	_, err := s.gw.CaptureIntent(intentID)
	if err == nil {
		return nil
	}

	intent, getErr := s.gw.GetIntent(intentID)
	if getErr == nil && intent.Status == gateway.IntentStatusSucceeded {
		log.Printf("Intent %s already captured, continuing", intentID)
		return nil
	}
	return utils.NewInternalError("Failed to capture payment")
}

// transferPayout moves the provider's share to their connected account. A
// provider without a connect account keeps the payout pending until they
// finish onboarding; this is not a completion failure.
func (s *GigCompletionService) transferPayout(project *models.OpportunityProject) string {
	account, err := s.connect.GetByProviderID(project.ProviderID)
	if err == sql.ErrNoRows {
		log.Printf("Provider %s has no connect account, skipping transfer", project.ProviderID)
		return ""
	}
	if err != nil {
		log.Printf("Warning: failed to look up connect account for %s: %v", project.ProviderID, err)
		return ""
	}

	amountMinor, err := utils.ToMinorUnits(project.CreatorPayoutAmount)
	if err != nil {
		log.Printf("Warning: invalid payout amount for project %s: %v", project.ID, err)
		return ""
	}

	transfer, err := s.gw.CreateTransfer(gateway.CreateTransferParams{
		Amount:               amountMinor,
		Currency:             project.Currency,
		DestinationAccountID: account.StripeAccountID,
		Metadata:             map[string]string{"project_id": project.ID},
	})
	if err != nil {
		log.Printf("Warning: failed to create transfer for project %s: %v", project.ID, err)
		return ""
	}
	return transfer.ID
}
