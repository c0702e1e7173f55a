// internal/mail/transport.go
package mail

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gomail/gomail"

	"github.com/mailburst/mailburst/internal/config"
)

// Transport performs final delivery of one built message to its complete
// envelope recipient set (To + Cc + Bcc, duplicates allowed).
type Transport interface {
	Deliver(ctx context.Context, m *gomail.Message, recipients []string) error
}

// SMTPTransport opens one relay session per delivery: dial, STARTTLS,
// authenticate, send, quit. No pooling or reuse, so a broken connection in
// one worker can never leak into another.
type SMTPTransport struct {
	cfg config.SMTPConfig
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) Deliver(ctx context.Context, m *gomail.Message, recipients []string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.ConnectTimeout)
	defer cancel()

	sc, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	defer sc.Close()

	if err := sc.Send(t.cfg.SenderEmail, recipients, m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// dial bounds gomail's Dial (which exposes no timeout of its own) with the
// context deadline. On timeout the late connection, if one ever arrives, is
// closed by the drainer goroutine.
func (t *SMTPTransport) dial(ctx context.Context) (gomail.SendCloser, error) {
	type dialResult struct {
		sc  gomail.SendCloser
		err error
	}

	d := gomail.NewDialer(t.cfg.Host, t.cfg.Port, t.cfg.Username, t.cfg.Password)

	ch := make(chan dialResult, 1)
	go func() {
		sc, err := d.Dial()
		ch <- dialResult{sc: sc, err: err}
	}()

	select {
	case r := <-ch:
		return r.sc, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.sc != nil {
				r.sc.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// DryRunTransport prints messages instead of delivering them. Used by the
// CLI to rehearse a campaign against a real sheet without touching the relay.
type DryRunTransport struct {
	Out io.Writer
}

func (t *DryRunTransport) Deliver(_ context.Context, m *gomail.Message, recipients []string) error {
	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "------> MAIL TO: %v\n", recipients)
	if _, err := m.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out, "------> /MAIL")
	return nil
}
