package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a product review left by a user.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	Hidden    bool      `json:"hidden" db:"hidden"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewAction is a moderation action applied by an admin.
type ReviewAction string

const (
	// ReviewActionHide marks the review as hidden without removing it.
	ReviewActionHide ReviewAction = "HIDE"
	// ReviewActionDelete removes the review permanently.
	ReviewActionDelete ReviewAction = "DELETE"
)

// ReviewCreateRequest is the payload for creating a review.
type ReviewCreateRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

// ReviewAdminActionRequest is the payload for a moderation action.
type ReviewAdminActionRequest struct {
	ReviewID uuid.UUID    `json:"reviewId"`
	Action   ReviewAction `json:"action"`
}

// ReviewPageResponse is a page of reviews with pagination metadata.
type ReviewPageResponse struct {
	Content       []Review `json:"content"`
	Page          int      `json:"page"`
	Size          int      `json:"size"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	First         bool     `json:"first"`
	Last          bool     `json:"last"`
}
