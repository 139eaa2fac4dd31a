package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	General        IssueCategory = "general"
	Infrastructure IssueCategory = "infrastructure"
	Safety         IssueCategory = "safety"
	Cleanliness    IssueCategory = "cleanliness"
	Environment    IssueCategory = "environment"
)

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case General, Infrastructure, Safety, Cleanliness, Environment:
		return true
	}
	return false
}

// IssueStatus enum. Statuses form a fixed forward-only sequence:
// Under Review -> In Progress -> Completed.
type IssueStatus string

const (
	UnderReview IssueStatus = "Under Review"
	InProgress  IssueStatus = "In Progress"
	Completed   IssueStatus = "Completed"
)

// ValidStatus reports whether s names a known status.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case UnderReview, InProgress, Completed:
		return true
	}
	return false
}

// Next returns the immediate successor status. ok is false when the status
// is terminal (Completed) or unknown.
func (s IssueStatus) Next() (IssueStatus, bool) {
	switch s {
	case UnderReview:
		return InProgress, true
	case InProgress:
		return Completed, true
	}
	return "", false
}

// CanAdvanceTo reports whether target is the immediate successor of s.
// No transition moves a status backward or skips a stage.
func (s IssueStatus) CanAdvanceTo(target IssueStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Issue represents a community issue reported by a user
type Issue struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Location       string             `bson:"location" json:"location"`
	Category       IssueCategory      `bson:"category" json:"category"`
	Status         IssueStatus        `bson:"status" json:"status"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserEmail      string             `bson:"user_email" json:"user_email"`
	BeforeImageURL *string            `bson:"before_image_url,omitempty" json:"before_image_url,omitempty"`
	AfterImageURL  *string            `bson:"after_image_url,omitempty" json:"after_image_url,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
