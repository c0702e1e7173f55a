// internal/render/render_test.go
package render

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	appErrors "github.com/mailburst/mailburst/internal/errors"
	"github.com/mailburst/mailburst/internal/model"
)

func TestValidateSpec(t *testing.T) {
	r := New()

	if err := r.ValidateSpec(model.TemplateSpec{BuiltinID: "1"}); err != nil {
		t.Errorf("builtin 1: %v", err)
	}
	if err := r.ValidateSpec(model.TemplateSpec{Subject: "s", Body: "b"}); err != nil {
		t.Errorf("custom: %v", err)
	}

	var noTpl *appErrors.ErrNoTemplate
	if err := r.ValidateSpec(model.TemplateSpec{BuiltinID: "9"}); !errors.As(err, &noTpl) {
		t.Errorf("unknown builtin: got %v, want ErrNoTemplate", err)
	}

	var empty *appErrors.ErrEmptyCustomTemplate
	if err := r.ValidateSpec(model.TemplateSpec{Subject: "s"}); !errors.As(err, &empty) {
		t.Errorf("missing body: got %v, want ErrEmptyCustomTemplate", err)
	}
	if err := r.ValidateSpec(model.TemplateSpec{Subject: "  ", Body: "b"}); !errors.As(err, &empty) {
		t.Errorf("blank subject: got %v, want ErrEmptyCustomTemplate", err)
	}
}

func TestRenderBuiltinUsesName(t *testing.T) {
	r := New()

	subject, body, err := r.Render(model.TemplateSpec{BuiltinID: "1"}, "Dr. Ada", nil)
	if err != nil {
		t.Fatal(err)
	}
	if subject == "" {
		t.Error("empty subject")
	}
	if !strings.Contains(body, "Dr. Ada") {
		t.Error("body does not address the recipient by name")
	}
	if !strings.Contains(body, "cid:invitation_banner.jpg") {
		t.Error("body does not reference the inline image cid")
	}
}

func TestRenderCustomSubstitution(t *testing.T) {
	r := New()

	spec := model.TemplateSpec{
		Subject: "Hi {{name}}",
		Body:    "<p>Dear {{Name}}, your id is {{ID}}.</p>",
	}
	row := map[string]string{"name": "Ada", "id": "42"}

	subject, body, err := r.Render(spec, "Ada", row)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Hi Ada" {
		t.Errorf("subject = %q", subject)
	}
	// Placeholder matching is case-insensitive on both sides.
	if !strings.Contains(body, "Dear Ada") || !strings.Contains(body, "your id is 42") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderUnmatchedPlaceholderStays(t *testing.T) {
	r := New()

	spec := model.TemplateSpec{
		Subject: "Hello {{missing}}",
		Body:    "<p>{{also_missing}}</p>",
	}

	subject, body, err := r.Render(spec, "Ada", map[string]string{"name": "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Hello {{missing}}" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "{{also_missing}}") {
		t.Errorf("body = %q", body)
	}
}

// Runes whose lowercase form has a different byte length (Kelvin sign,
// dotted capital I) must pass through substitution untouched, with the
// placeholders around them still replaced.
func TestRenderSubstitutionMultiByteSafe(t *testing.T) {
	r := New()

	spec := model.TemplateSpec{
		Subject: "K {{name}}",
		Body:    "<p>İstanbul {{NAME}} K</p>",
	}
	row := map[string]string{"name": "Ada"}

	subject, body, err := r.Render(spec, "Ada", row)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "K Ada" {
		t.Errorf("subject = %q", subject)
	}
	if !utf8.ValidString(subject) || !utf8.ValidString(body) {
		t.Error("substitution produced invalid UTF-8")
	}
	if !strings.Contains(body, "İstanbul Ada K") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderSanitizesCustomBody(t *testing.T) {
	r := New()

	spec := model.TemplateSpec{
		Subject: "s",
		Body:    `<p>Dear Dr. X</p><script>alert("x")</script><a href="javascript:evil()">link</a>`,
	}

	_, body, err := r.Render(spec, "X", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "<p>Dear Dr. X</p>") {
		t.Errorf("safe markup stripped: %q", body)
	}
	if strings.Contains(body, "script") || strings.Contains(body, "alert") {
		t.Errorf("script survived sanitization: %q", body)
	}
	if strings.Contains(body, "javascript:") {
		t.Errorf("javascript href survived sanitization: %q", body)
	}
}

func TestRenderKeepsCidImages(t *testing.T) {
	r := New()

	spec := model.TemplateSpec{
		Subject: "s",
		Body:    `<img src="cid:banner.jpg" alt="banner">`,
	}

	_, body, err := r.Render(spec, "X", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, `src="cid:banner.jpg"`) {
		t.Errorf("cid image src stripped: %q", body)
	}
}

func TestBuiltins(t *testing.T) {
	all := Builtins()
	if len(all) != 3 {
		t.Fatalf("got %d builtins, want 3", len(all))
	}
	for i, b := range all {
		if b.ID == "" || b.ImageCID == "" {
			t.Errorf("builtin %d incomplete: %+v", i, b)
		}
		subject, body := b.Render("Ada")
		if subject == "" || body == "" {
			t.Errorf("builtin %s rendered empty output", b.ID)
		}
	}
}
