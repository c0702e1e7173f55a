// internal/mail/message.go
package mail

import (
	"io"
	"os"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog"

	"github.com/mailburst/mailburst/internal/model"
	"github.com/mailburst/mailburst/internal/render"
)

// Builder assembles outbound messages from rendered content plus a task's
// addressing. BCC recipients are deliberately never written to a header:
// they travel only in the envelope recipient list handed to the transport.
type Builder struct {
	senderName  string
	senderEmail string
	images      map[string]string // built-in template id -> image file path
	log         zerolog.Logger
}

func NewBuilder(senderName, senderEmail string, images map[string]string, log zerolog.Logger) *Builder {
	return &Builder{
		senderName:  senderName,
		senderEmail: senderEmail,
		images:      images,
		log:         log.With().Str("component", "builder").Logger(),
	}
}

// Build creates the message for one task. For built-in templates the
// template's inline image is embedded under the cid its body references; a
// missing or unreadable image is not an error, the email just goes out
// without it. Custom templates never carry an inline image.
func (b *Builder) Build(task model.Task, spec model.TemplateSpec, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", b.senderEmail, b.senderName)
	m.SetHeader("To", task.To)
	if len(task.CC) > 0 {
		m.SetHeader("Cc", task.CC...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if !spec.IsCustom() {
		b.embedTemplateImage(m, spec.BuiltinID)
	}

	return m
}

func (b *Builder) embedTemplateImage(m *gomail.Message, builtinID string) {
	path := b.images[builtinID]
	if path == "" {
		return
	}

	builtin, ok := render.BuiltinByID(builtinID)
	if !ok {
		return
	}

	// Read up front so an unreadable file degrades here instead of failing
	// the send later.
	data, err := os.ReadFile(path)
	if err != nil {
		b.log.Info().Str("template", builtinID).Str("path", path).Err(err).
			Msg("inline image unavailable, sending without it")
		return
	}

	m.Embed(builtin.ImageCID, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}
