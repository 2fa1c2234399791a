package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
)

// ProjectRepository handles opportunity posts and their linked projects
type ProjectRepository struct {
	DB *sql.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

// GetPostByID retrieves an opportunity post
func (r *ProjectRepository) GetPostByID(postID string) (*models.OpportunityPost, error) {
	var post models.OpportunityPost
	var selectedProvider sql.NullString
	err := r.DB.QueryRow(
		`SELECT id, requester_id, selected_provider_id, status, created_at
		 FROM opportunity_posts WHERE id = $1`,
		postID,
	).Scan(&post.ID, &post.RequesterID, &selectedProvider, &post.Status, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	if selectedProvider.Valid {
		post.SelectedProviderID = selectedProvider.String
	}
	return &post, nil
}

// GetProjectByPostID retrieves the project linked to an opportunity post
func (r *ProjectRepository) GetProjectByPostID(postID string) (*models.OpportunityProject, error) {
	var project models.OpportunityProject
	var intentID, transferID sql.NullString
	err := r.DB.QueryRow(
		`SELECT id, post_id, requester_id, provider_id, currency, creator_payout_amount,
		        payment_intent_id, transfer_id, status, completed_at
		 FROM opportunity_projects WHERE post_id = $1`,
		postID,
	).Scan(&project.ID, &project.PostID, &project.RequesterID, &project.ProviderID,
		&project.Currency, &project.CreatorPayoutAmount, &intentID, &transferID,
		&project.Status, &project.CompletedAt)
	if err != nil {
		return nil, err
	}
	if intentID.Valid {
		project.PaymentIntentID = intentID.String
	}
	if transferID.Valid {
		project.TransferID = transferID.String
	}
	return &project, nil
}

// MarkCompleted marks the post released and the project completed in one
// transaction, recording the transfer id when a transfer was made
func (r *ProjectRepository) MarkCompleted(postID, projectID, transferID string, completedAt time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE opportunity_posts SET status = 'completed', updated_at = NOW() WHERE id = $1",
		postID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post status: %v", err)
	}

	var transfer sql.NullString
	if transferID != "" {
		transfer = sql.NullString{String: transferID, Valid: true}
	}
	_, err = tx.Exec(
		`UPDATE opportunity_projects
		 SET status = 'completed', completed_at = $1, transfer_id = $2
		 WHERE id = $3`,
		completedAt, transfer, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %v", err)
	}

	return tx.Commit()
}
