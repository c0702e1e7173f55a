// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID              int        `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	TemplateID      string     `db:"template_id" json:"template_id"`
	CustomSubject   string     `db:"custom_subject" json:"custom_subject,omitempty"`
	CustomBody      string     `db:"custom_body" json:"custom_body,omitempty"`
	PerformanceMode string     `db:"performance_mode" json:"performance_mode"`
	Status          string     `db:"status" json:"status"` // draft, running, completed, failed
	SheetFile       string     `db:"sheet_file" json:"sheet_file"`
	TotalRecipients int        `db:"total_recipients" json:"total_recipients"`
	EmailsSent      int        `db:"emails_sent" json:"emails_sent"`
	EmailsFailed    int        `db:"emails_failed" json:"emails_failed"`
	SuccessRate     float64    `db:"success_rate" json:"success_rate"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// Stats are the aggregate counts of one completed run. Attempts excludes
// skipped rows; SuccessRate is a percentage and is 0 when nothing was
// attempted.
type Stats struct {
	Sent        int     `json:"sent"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	Attempts    int     `json:"attempts"`
	SuccessRate float64 `json:"success_rate"`
}

// ComputeStats derives the aggregate counts from drained outcome lists.
func ComputeStats(sent, failed, skipped []Outcome) Stats {
	s := Stats{
		Sent:     len(sent),
		Failed:   len(failed),
		Skipped:  len(skipped),
		Attempts: len(sent) + len(failed),
	}
	if s.Attempts > 0 {
		s.SuccessRate = float64(s.Sent) / float64(s.Attempts) * 100
	}
	return s
}
