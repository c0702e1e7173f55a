// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appErrors "github.com/mailburst/mailburst/internal/errors"
	"github.com/mailburst/mailburst/internal/model"
	"github.com/mailburst/mailburst/internal/report"
	"github.com/mailburst/mailburst/internal/repository"
	"github.com/mailburst/mailburst/internal/service"
	"github.com/mailburst/mailburst/internal/sheet"
)

type CampaignController struct {
	Service   *service.CampaignService
	Repo      repository.CampaignRepositoryInterface
	UploadDir string
	Log       zerolog.Logger
}

type sendRequest struct {
	Name            string `json:"name"`
	Template        string `json:"template"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	PerformanceMode string `json:"performance_mode"`
	SheetFile       string `json:"sheet_file"`
	// Images maps a built-in template id to an uploaded image filename,
	// overriding the configured inline image for this run.
	Images map[string]string `json:"images"`
}

type reportInfo struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Count    int    `json:"count"`
}

// SendCampaign runs a campaign synchronously against an uploaded sheet and
// returns the aggregate result plus the generated report filenames. The
// response is not sent until every email has an outcome.
func (c *CampaignController) SendCampaign(w http.ResponseWriter, r *http.Request) {
	var body sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if body.SheetFile == "" {
		http.Error(w, "sheet_file is required", http.StatusBadRequest)
		return
	}
	sheetName := filepath.Base(body.SheetFile)
	table, err := sheet.Read(filepath.Join(c.UploadDir, sheetName))
	if err != nil {
		http.Error(w, "failed to read sheet: "+err.Error(), http.StatusBadRequest)
		return
	}

	spec := model.TemplateSpec{BuiltinID: strings.TrimSpace(body.Template)}
	if spec.IsCustom() {
		spec.Subject = body.Subject
		spec.Body = body.Body
	}

	preset, ok := model.PresetByID(body.PerformanceMode)
	if !ok {
		preset, _ = model.PresetByID("2")
	}

	campaignID := 0
	if c.Repo != nil {
		campaign := &model.Campaign{
			Name:            body.Name,
			TemplateID:      spec.Label(),
			PerformanceMode: preset.ID,
			Status:          "draft",
			SheetFile:       sheetName,
			TotalRecipients: len(table.Rows),
		}
		if err := c.Repo.Create(campaign); err != nil {
			c.Log.Error().Err(err).Msg("create campaign record")
		} else {
			campaignID = campaign.ID
		}
	}

	images := map[string]string{}
	for id, name := range body.Images {
		if name == "" {
			continue
		}
		images[id] = filepath.Join(c.UploadDir, filepath.Base(name))
	}

	result, err := c.Service.Run(r.Context(), service.RunParams{
		CampaignID: campaignID,
		Table:      table,
		Spec:       spec,
		Preset:     preset,
		Images:     images,
	})
	if err != nil {
		writeRunError(w, err)
		return
	}

	reports := []reportInfo{}
	if name, err := report.WriteSuccess(c.UploadDir, spec.Label(), result.Sent); err != nil {
		c.Log.Error().Err(err).Msg("write success report")
	} else if name != "" {
		reports = append(reports, reportInfo{Type: "success", Filename: name, Count: len(result.Sent)})
	}

	notSent := append(append([]model.Outcome{}, result.Failed...), result.Skipped...)
	if name, err := report.WriteFailure(c.UploadDir, spec.Label(), notSent); err != nil {
		c.Log.Error().Err(err).Msg("write failure report")
	} else if name != "" {
		reports = append(reports, reportInfo{Type: "failure", Filename: name, Count: len(notSent)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id":   campaignID,
		"total_sent":    result.Stats.Sent,
		"total_failed":  result.Stats.Failed,
		"total_skipped": result.Stats.Skipped,
		"success_rate":  result.Stats.SuccessRate,
		"reports":       reports,
	})
}

// writeRunError maps pre-dispatch validation failures to 400s; everything
// else is a 500.
func writeRunError(w http.ResponseWriter, err error) {
	var colErr *appErrors.ErrColumnNotFound
	var tplErr *appErrors.ErrNoTemplate
	var emptyErr *appErrors.ErrEmptyCustomTemplate
	switch {
	case errors.As(err, &colErr), errors.As(err, &tplErr), errors.As(err, &emptyErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListCampaigns returns a paginated campaign list. Requires the database.
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	if c.Repo == nil {
		http.Error(w, "campaign history requires a database", http.StatusServiceUnavailable)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	campaigns, total, err := c.Repo.ListCampaigns((page-1)*pageSize, pageSize, status)
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": campaigns,
		"pagination": map[string]int{
			"total_count": total,
			"total_pages": totalPages,
			"page":        page,
			"page_size":   pageSize,
		},
	})
}

// GetCampaignDetails returns one campaign with its per-status log counts.
func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
	if c.Repo == nil {
		http.Error(w, "campaign history requires a database", http.StatusServiceUnavailable)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.Repo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := c.Repo.GetCampaignStats(id)
	if err != nil {
		http.Error(w, "failed to fetch campaign stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign": campaign,
		"stats":    stats,
	})
}

// PersonalizedPreview renders a template for one synthetic recipient.
func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Template string            `json:"template"`
		Subject  string            `json:"subject"`
		Body     string            `json:"body"`
		Name     string            `json:"name"`
		Row      map[string]string `json:"row"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	spec := model.TemplateSpec{BuiltinID: strings.TrimSpace(body.Template)}
	if spec.IsCustom() {
		spec.Subject = body.Subject
		spec.Body = body.Body
	}

	name := body.Name
	if name == "" {
		name = "Recipient_1"
	}

	subject, rendered, err := c.Service.RenderPreview(spec, name, body.Row)
	if err != nil {
		writeRunError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"subject":       subject,
		"rendered_body": rendered,
		"used_template": spec.Label(),
	})
}
