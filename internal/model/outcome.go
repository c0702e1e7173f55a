// internal/model/outcome.go
package model

type OutcomeStatus string

const (
	StatusSent    OutcomeStatus = "sent"
	StatusFailed  OutcomeStatus = "failed"
	StatusSkipped OutcomeStatus = "skipped"
)

// Outcome is the terminal classification of one task (Sent or Failed) or of
// one unresolvable sheet row (Skipped). Outcomes are append-only: nothing
// mutates one after it has been recorded.
type Outcome struct {
	Status   OutcomeStatus `json:"status"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	CC       []string      `json:"cc,omitempty"`
	BCC      []string      `json:"bcc,omitempty"`
	Template string        `json:"template"`
	Seq      int           `json:"seq,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// SentOutcome records a successful delivery for a task.
func SentOutcome(t Task, template string) Outcome {
	return Outcome{
		Status:   StatusSent,
		Name:     t.Name,
		Email:    t.To,
		CC:       t.CC,
		BCC:      t.BCC,
		Template: template,
		Seq:      t.Seq,
	}
}

// FailedOutcome records a delivery failure for a task. The reason is the
// stringified cause captured at the task boundary.
func FailedOutcome(t Task, template, reason string) Outcome {
	return Outcome{
		Status:   StatusFailed,
		Name:     t.Name,
		Email:    t.To,
		CC:       t.CC,
		BCC:      t.BCC,
		Template: template,
		Seq:      t.Seq,
		Reason:   reason,
	}
}

// SkippedOutcome records a sheet row whose TO cell yielded no valid address.
// It is produced during row expansion, before any dispatch work starts.
func SkippedOutcome(name, rawCell, reason string) Outcome {
	return Outcome{
		Status: StatusSkipped,
		Name:   name,
		Email:  rawCell,
		Reason: reason,
	}
}
