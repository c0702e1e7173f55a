// internal/model/task.go
package model

// Task is one unit of dispatch work: a single resolved TO address plus the
// addressing and row data shared by every task expanded from the same sheet
// row. Tasks are immutable once created and are consumed exactly once by a
// worker.
type Task struct {
	// Seq is assigned at enqueue time and increases monotonically across the
	// campaign. It is a trace id for logs and reports, not an ordering
	// guarantee.
	Seq  int
	Name string
	To   string
	CC   []string
	BCC  []string
	// Row holds the full sheet row (lower-cased, trimmed headers) for
	// custom-template variable substitution. Nil for built-in templates.
	Row map[string]string
}

// Recipients is the full envelope recipient list handed to the relay:
// To, then CC, then BCC. Duplicates are allowed and delivered twice.
func (t Task) Recipients() []string {
	recipients := make([]string, 0, 1+len(t.CC)+len(t.BCC))
	recipients = append(recipients, t.To)
	recipients = append(recipients, t.CC...)
	recipients = append(recipients, t.BCC...)
	return recipients
}

