// Package types provides the request and response bodies of the HTTP API.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/resume"
)

var validate = validator.New()

// UpdateContactRequest sets one contact field.
type UpdateContactRequest struct {
	Field string `json:"field" validate:"required,oneof=name email phone location linkedin github website"`
	Value string `json:"value" validate:"max=500"`
}

// UpdateSummaryRequest replaces the summary text.
type UpdateSummaryRequest struct {
	Summary string `json:"summary" validate:"max=5000"`
}

// AddItemRequest appends an item to a list section. Fields may be empty for a blank item.
type AddItemRequest struct {
	Fields map[string]string `json:"fields,omitempty" validate:"max=10,dive,keys,required,endkeys,max=5000"`
}

// UpdateItemRequest sets one field of a list item.
type UpdateItemRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"max=5000"`
}

// DragRequest reports a drag start or drag-enter at a position. Scope is a list section
// key or "sections".
type DragRequest struct {
	Scope string `json:"scope" validate:"required"`
	Index *int   `json:"index" validate:"required,min=0"`
}

// MoveRequest moves the element at From to To.
type MoveRequest struct {
	From *int `json:"from" validate:"required,min=0"`
	To   *int `json:"to" validate:"required,min=0"`
}

// SelectTemplateRequest switches the template.
type SelectTemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

// Validate validates the UpdateContactRequest using the validator.
func (r *UpdateContactRequest) Validate() error { return validate.Struct(r) }

// Validate validates the UpdateSummaryRequest using the validator.
func (r *UpdateSummaryRequest) Validate() error { return validate.Struct(r) }

// Validate validates the AddItemRequest using the validator.
func (r *AddItemRequest) Validate() error { return validate.Struct(r) }

// Validate validates the UpdateItemRequest using the validator.
func (r *UpdateItemRequest) Validate() error { return validate.Struct(r) }

// Validate validates the DragRequest using the validator.
func (r *DragRequest) Validate() error { return validate.Struct(r) }

// Validate validates the MoveRequest using the validator.
func (r *MoveRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SelectTemplateRequest using the validator.
func (r *SelectTemplateRequest) Validate() error { return validate.Struct(r) }

// CreateSessionResponse carries the bearer token for a new session.
type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TemplateInfo describes one selectable template.
type TemplateInfo struct {
	Name    string   `json:"name"`
	Default bool     `json:"default"`
	Pinned  []string `json:"pinned"`
}

// AddItemResponse returns the id minted for a new item.
type AddItemResponse struct {
	ID string `json:"id"`
}

// MoveResponse reports whether a move or drop changed anything.
type MoveResponse struct {
	Moved bool `json:"moved"`
}

// SummaryResponse returns a generated summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ImportResponse returns the imported document and how it was read.
type ImportResponse struct {
	Document resume.Document     `json:"document"`
	Metadata *ingestion.Metadata `json:"metadata"`
}
