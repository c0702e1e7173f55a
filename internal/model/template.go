// internal/model/template.go
package model

import "strings"

// TemplateSpec selects what gets rendered for each recipient: either one of
// the built-in templates by identifier, or a caller-supplied subject/body
// pair with {{field}} placeholders.
type TemplateSpec struct {
	BuiltinID string `json:"builtin_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body,omitempty"`
}

// IsCustom reports whether the spec carries its own subject/body instead of
// referencing a built-in template.
func (s TemplateSpec) IsCustom() bool {
	return s.BuiltinID == ""
}

// Label is the template identifier recorded on outcomes and reports.
func (s TemplateSpec) Label() string {
	if s.IsCustom() {
		return "custom"
	}
	return s.BuiltinID
}

// Preset is one of the fixed worker-count/pacing combinations.
type Preset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Workers int    `json:"workers"`
	DelayMS int    `json:"delay_ms"`
}

var presets = map[string]Preset{
	"1": {ID: "1", Name: "safe", Workers: 1, DelayMS: 500},
	"2": {ID: "2", Name: "fast", Workers: 5, DelayMS: 100},
	"3": {ID: "3", Name: "turbo", Workers: 8, DelayMS: 50},
	"4": {ID: "4", Name: "beast", Workers: 10, DelayMS: 20},
}

// PresetByID looks up a performance preset. The second return is false for
// unknown ids.
func PresetByID(id string) (Preset, bool) {
	p, ok := presets[strings.TrimSpace(id)]
	return p, ok
}
