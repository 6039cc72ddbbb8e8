package model

import (
	"time"

	"github.com/google/uuid"
)

// Yellow policy names accepted by config and the run form.
const (
	YellowPolicyDay      = "day"
	YellowPolicyAdvanced = "advanced"
)

// Layout variants accepted by config and the run form.
const (
	LayoutSeparated = "separated"
	LayoutPadded    = "padded"
)

// RunOptions are the per-run knobs an operator may override.
type RunOptions struct {
	YellowPolicy string `json:"yellow_policy"`
	Layout       string `json:"layout"`
	Capacity     int    `json:"capacity"`
}

// RunSummary is the list view of a processing run.
type RunSummary struct {
	ID          uuid.UUID  `json:"id"`
	RosterCount int        `json:"roster_count"`
	RollCount   int        `json:"roll_count"`
	RecordCount int        `json:"record_count"`
	Warnings    []string   `json:"warnings"`
	Options     RunOptions `json:"options"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Run is a full processing run including its classified records.
type Run struct {
	RunSummary
	Records []ClassifiedRecord `json:"records"`
}

// CreateRunForm holds the optional multipart form fields of a run upload.
type CreateRunForm struct {
	YellowPolicy string `form:"yellow_policy" binding:"omitempty,oneof=day advanced"`
	Layout       string `form:"layout" binding:"omitempty,oneof=separated padded"`
	Capacity     int    `form:"capacity" binding:"omitempty,min=1,max=30"`
}

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required,min=8,max=128"`
}

// LoginResponse is returned after a successful operator login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
