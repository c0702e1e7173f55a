// internal/render/render.go
package render

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	appErrors "github.com/mailburst/mailburst/internal/errors"
	"github.com/mailburst/mailburst/internal/model"
)

// Renderer turns a template spec plus one recipient's data into a final
// subject and sanitized HTML body.
type Renderer struct {
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{policy: newPolicy()}
}

// ValidateSpec checks a template spec before any dispatch work begins.
// Failures here are caller configuration errors, never per-recipient ones.
func (r *Renderer) ValidateSpec(spec model.TemplateSpec) error {
	if spec.IsCustom() {
		if strings.TrimSpace(spec.Subject) == "" || strings.TrimSpace(spec.Body) == "" {
			return appErrors.NewEmptyCustomTemplate()
		}
		return nil
	}
	if _, ok := BuiltinByID(spec.BuiltinID); !ok {
		return appErrors.NewNoTemplate()
	}
	return nil
}

// Render produces the subject and HTML body for one recipient. Built-in
// templates are pure functions of the display name. Custom templates get
// every {{field}} occurrence replaced (case-insensitively, literal match)
// with the row value, then the body is sanitized; unmatched placeholders stay
// in the output verbatim.
func (r *Renderer) Render(spec model.TemplateSpec, name string, row map[string]string) (string, string, error) {
	if err := r.ValidateSpec(spec); err != nil {
		return "", "", err
	}

	if !spec.IsCustom() {
		b, _ := BuiltinByID(spec.BuiltinID)
		subject, body := b.Render(name)
		return subject, body, nil
	}

	subject := substitute(spec.Subject, row)
	body := r.policy.Sanitize(substitute(spec.Body, row))
	return subject, body, nil
}

// substitute replaces every {{field}} token for each row field. Fields are
// applied in sorted order so a run is deterministic; the match is a literal
// token replace, so overlapping field names behave exactly like the simple
// string replace they are.
func substitute(s string, row map[string]string) string {
	if len(row) == 0 {
		return s
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		token := "{{" + strings.ToLower(strings.TrimSpace(k)) + "}}"
		s = replaceFold(s, token, row[k])
	}
	return s
}

// replaceFold replaces every case-insensitive occurrence of token in s.
// token must already be lower case. Matching is rune-wise: lowercasing can
// change byte length (U+212A Kelvin sign lowers to 'k'), so byte offsets
// computed on a lowered copy cannot be applied back to s.
func replaceFold(s, token, value string) string {
	if !strings.Contains(strings.ToLower(s), token) {
		return s
	}

	tokenRunes := []rune(token)

	var b strings.Builder
	for i := 0; i < len(s); {
		if n, ok := matchFold(s[i:], tokenRunes); ok {
			b.WriteString(value)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// matchFold reports whether s starts with token under per-rune lowercasing,
// returning the byte length of the matched prefix of s.
func matchFold(s string, token []rune) (int, bool) {
	i := 0
	for _, tr := range token {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != tr {
			return 0, false
		}
		i += size
	}
	return i, true
}
