// internal/errors/errors.go
package appErrors

import "fmt"

// ErrColumnNotFound is raised before dispatch when the sheet is missing a
// required column. It aborts the whole run.
type ErrColumnNotFound struct {
	Column string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("%s column not found in sheet", e.Column)
}

// Helper constructor
func NewColumnNotFound(column string) error {
	return &ErrColumnNotFound{Column: column}
}

// ErrNoTemplate is raised when neither a built-in template nor a custom
// subject/body pair was selected.
type ErrNoTemplate struct{}

func (e *ErrNoTemplate) Error() string {
	return "no template selected"
}

func NewNoTemplate() error {
	return &ErrNoTemplate{}
}

// ErrEmptyCustomTemplate is raised when a custom template is missing its
// subject or body.
type ErrEmptyCustomTemplate struct{}

func (e *ErrEmptyCustomTemplate) Error() string {
	return "custom template requires a subject and a body"
}

func NewEmptyCustomTemplate() error {
	return &ErrEmptyCustomTemplate{}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}
