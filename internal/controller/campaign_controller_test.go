// internal/controller/campaign_controller_test.go
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailburst/mailburst/internal/mail"
	"github.com/mailburst/mailburst/internal/render"
	"github.com/mailburst/mailburst/internal/service"
)

// recordingTransport accepts everything and remembers the envelopes and the
// wire form of each message.
type recordingTransport struct {
	mu        sync.Mutex
	delivered [][]string
	messages  []string
}

var _ mail.Transport = (*recordingTransport)(nil)

func (t *recordingTransport) Deliver(_ context.Context, m *gomail.Message, recipients []string) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.delivered = append(t.delivered, recipients)
	t.messages = append(t.messages, buf.String())
	return nil
}

func newTestController(t *testing.T, transport mail.Transport) *CampaignController {
	t.Helper()
	svc := &service.CampaignService{
		Renderer:    render.New(),
		Transport:   transport,
		SenderName:  "Campaign Team",
		SenderEmail: "sender@example.com",
		Log:         zerolog.Nop(),
	}
	return &CampaignController{
		Service:   svc,
		UploadDir: t.TempDir(),
		Log:       zerolog.Nop(),
	}
}

func TestSendCampaign(t *testing.T) {
	transport := &recordingTransport{}
	c := newTestController(t, transport)

	csv := "name,email\nAda,ada@example.com\nGrace,grace@example.com\nBad,nope\n"
	require.NoError(t, os.WriteFile(filepath.Join(c.UploadDir, "list.csv"), []byte(csv), 0o644))

	body := `{"name":"launch","template":"","subject":"Hi {{name}}","body":"<p>Hello {{name}}</p>","performance_mode":"4","sheet_file":"list.csv"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/send", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.SendCampaign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		TotalSent    int     `json:"total_sent"`
		TotalFailed  int     `json:"total_failed"`
		TotalSkipped int     `json:"total_skipped"`
		SuccessRate  float64 `json:"success_rate"`
		Reports      []struct {
			Type     string `json:"type"`
			Filename string `json:"filename"`
			Count    int    `json:"count"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.TotalSent)
	assert.Equal(t, 0, resp.TotalFailed)
	assert.Equal(t, 1, resp.TotalSkipped)
	assert.InDelta(t, 100.0, resp.SuccessRate, 0.001)
	assert.Len(t, transport.delivered, 2)

	// Both report workbooks exist on disk under the upload dir.
	require.Len(t, resp.Reports, 2)
	for _, r := range resp.Reports {
		_, err := os.Stat(filepath.Join(c.UploadDir, r.Filename))
		assert.NoError(t, err, "report %s missing", r.Filename)
	}
}

// An uploaded image named in the request must end up embedded in the built
// messages under the template's cid.
func TestSendCampaignUploadedImage(t *testing.T) {
	transport := &recordingTransport{}
	c := newTestController(t, transport)

	csv := "name,email\nAda,ada@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(c.UploadDir, "list.csv"), []byte(csv), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(c.UploadDir, "banner.jpg"), []byte("jpegdata"), 0o644))

	body := `{"template":"1","performance_mode":"4","sheet_file":"list.csv","images":{"1":"banner.jpg"}}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/send", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.SendCampaign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, transport.messages, 1)

	// The wire form must carry the embedded part: its Content-ID and the
	// base64 of the uploaded bytes ("jpegdata").
	assert.Contains(t, transport.messages[0], "Content-ID",
		"no inline part in the message")
	assert.Contains(t, transport.messages[0], "anBlZ2RhdGE=",
		"uploaded image bytes not embedded")
}

func TestSendCampaignMissingSheet(t *testing.T) {
	c := newTestController(t, &recordingTransport{})

	body := `{"template":"1","sheet_file":"does-not-exist.csv"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/send", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.SendCampaign(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendCampaignInvalidTemplate(t *testing.T) {
	c := newTestController(t, &recordingTransport{})

	csv := "name,email\nAda,ada@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(c.UploadDir, "list.csv"), []byte(csv), 0o644))

	// Custom template with no body is rejected before anything is sent.
	body := `{"template":"","subject":"only subject","sheet_file":"list.csv"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/send", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.SendCampaign(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersonalizedPreview(t *testing.T) {
	c := newTestController(t, &recordingTransport{})

	body := `{"template":"","subject":"Hi {{name}}","body":"<p>Dear {{name}}</p><script>x</script>","name":"Ada","row":{"name":"Ada"}}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.PersonalizedPreview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Subject      string `json:"subject"`
		RenderedBody string `json:"rendered_body"`
		UsedTemplate string `json:"used_template"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Hi Ada", resp.Subject)
	assert.Contains(t, resp.RenderedBody, "Dear Ada")
	assert.NotContains(t, resp.RenderedBody, "script")
	assert.Equal(t, "custom", resp.UsedTemplate)
}

func TestPersonalizedPreviewBuiltin(t *testing.T) {
	c := newTestController(t, &recordingTransport{})

	body := `{"template":"2","name":"Dr. Grace"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	c.PersonalizedPreview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RenderedBody string `json:"rendered_body"`
		UsedTemplate string `json:"used_template"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.RenderedBody, "Dr. Grace")
	assert.Equal(t, "2", resp.UsedTemplate)
}
