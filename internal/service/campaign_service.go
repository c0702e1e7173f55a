// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mailburst/mailburst/internal/engine"
	appErrors "github.com/mailburst/mailburst/internal/errors"
	"github.com/mailburst/mailburst/internal/mail"
	"github.com/mailburst/mailburst/internal/model"
	"github.com/mailburst/mailburst/internal/queue"
	"github.com/mailburst/mailburst/internal/render"
	"github.com/mailburst/mailburst/internal/repository"
	"github.com/mailburst/mailburst/internal/sheet"
)

// CampaignService runs campaigns end to end: column detection, row
// expansion, concurrent dispatch, then persistence and events. Repo and
// Queue may be nil; a run works the same without them, it just is not
// recorded anywhere.
type CampaignService struct {
	Renderer      *render.Renderer
	Transport     mail.Transport
	SenderName    string
	SenderEmail   string
	DefaultImages map[string]string
	Repo          repository.CampaignRepositoryInterface
	Queue         queue.Queue
	Log           zerolog.Logger
}

// RunParams describes one campaign run.
type RunParams struct {
	// CampaignID is the persisted campaign row to update, 0 when the run is
	// not backed by the database.
	CampaignID int
	Table      *sheet.Table
	Spec       model.TemplateSpec
	Preset     model.Preset
	// Images overrides the default per-template inline image paths.
	Images map[string]string
}

// RunResult carries every outcome of a finished run plus the aggregates.
type RunResult struct {
	Sent    []model.Outcome `json:"sent"`
	Failed  []model.Outcome `json:"failed"`
	Skipped []model.Outcome `json:"skipped"`
	Stats   model.Stats     `json:"stats"`
}

// columns holds the detected header names for the addressing fields. Name
// and TO are mandatory, CC and BCC optional.
type columns struct {
	name string
	to   string
	cc   string
	bcc  string
}

// detectColumns scans headers in sheet order and picks the first match for
// each role by substring. The TO column is any header mentioning email or
// mail that is not a cc/bcc column. Name and TO are mandatory; a sheet
// missing either aborts the run before any dispatch work.
func detectColumns(headers []string) (columns, error) {
	var cols columns
	for _, h := range headers {
		hasCC := strings.Contains(h, "cc") && !strings.Contains(h, "bcc")
		hasBCC := strings.Contains(h, "bcc")
		hasMail := strings.Contains(h, "email") || strings.Contains(h, "mail")

		switch {
		case cols.name == "" && strings.Contains(h, "name"):
			cols.name = h
		case cols.to == "" && hasMail && !hasCC && !hasBCC:
			cols.to = h
		case cols.cc == "" && hasCC:
			cols.cc = h
		case cols.bcc == "" && hasBCC:
			cols.bcc = h
		}
	}
	if cols.name == "" {
		return cols, appErrors.NewColumnNotFound("name")
	}
	if cols.to == "" {
		return cols, appErrors.NewColumnNotFound("email")
	}
	return cols, nil
}

// expandRows turns sheet rows into dispatch tasks. Each valid address in a
// row's TO cell becomes its own task sharing the row's name, CC, BCC and
// data; rows with no valid TO address become Skipped outcomes. Seq numbers
// tasks across the whole run, 1-based.
func expandRows(table *sheet.Table, cols columns) ([]model.Task, []model.Outcome) {
	var tasks []model.Task
	var skipped []model.Outcome

	seq := 0
	for i, row := range table.Rows {
		name := strings.TrimSpace(row[cols.name])
		if name == "" {
			name = fmt.Sprintf("Recipient_%d", i+1)
		}

		toCell := row[cols.to]
		addresses := mail.ExtractAddresses(toCell)
		if len(addresses) == 0 {
			skipped = append(skipped, model.SkippedOutcome(name, strings.TrimSpace(toCell), "no valid TO email found"))
			continue
		}

		var cc, bcc []string
		if cols.cc != "" {
			cc = mail.ExtractAddresses(row[cols.cc])
		}
		if cols.bcc != "" {
			bcc = mail.ExtractAddresses(row[cols.bcc])
		}

		for _, addr := range addresses {
			seq++
			tasks = append(tasks, model.Task{
				Seq:  seq,
				Name: name,
				To:   addr,
				CC:   cc,
				BCC:  bcc,
				Row:  row,
			})
		}
	}

	return tasks, skipped
}

// Run executes a full campaign and blocks until every task has an outcome.
func (s *CampaignService) Run(ctx context.Context, p RunParams) (*RunResult, error) {
	if err := s.Renderer.ValidateSpec(p.Spec); err != nil {
		return nil, err
	}
	if p.Table == nil || len(p.Table.Rows) == 0 {
		return nil, fmt.Errorf("recipient sheet has no data rows")
	}

	cols, err := detectColumns(p.Table.Headers)
	if err != nil {
		return nil, err
	}

	tasks, skipped := expandRows(p.Table, cols)
	template := p.Spec.Label()

	log := s.Log.With().Int("campaign_id", p.CampaignID).Str("template", template).Logger()
	log.Info().Int("rows", len(p.Table.Rows)).Int("tasks", len(tasks)).
		Int("skipped", len(skipped)).Str("preset", p.Preset.Name).Msg("campaign run starting")

	if s.Repo != nil && p.CampaignID != 0 {
		if err := s.Repo.MarkRunning(p.CampaignID); err != nil {
			return nil, err
		}
	}

	images := s.DefaultImages
	if len(p.Images) > 0 {
		images = make(map[string]string, len(s.DefaultImages)+len(p.Images))
		for k, v := range s.DefaultImages {
			images[k] = v
		}
		for k, v := range p.Images {
			images[k] = v
		}
	}

	pipe := &sendPipeline{
		renderer:  s.Renderer,
		builder:   mail.NewBuilder(s.SenderName, s.SenderEmail, images, log),
		transport: s.Transport,
		spec:      p.Spec,
	}

	eng := engine.New(pipe, engine.Config{
		Workers:  p.Preset.Workers,
		Delay:    time.Duration(p.Preset.DelayMS) * time.Millisecond,
		Template: template,
		OnProgress: func(completed, total int) {
			log.Info().Int("completed", completed).Int("total", total).Msg("progress")
		},
	}, log)

	results := eng.Run(ctx, tasks)

	res := &RunResult{
		Sent:    results.Sent(),
		Failed:  results.Failed(),
		Skipped: skipped,
	}
	res.Stats = model.ComputeStats(res.Sent, res.Failed, res.Skipped)

	s.persist(p.CampaignID, res)
	s.publish(p.CampaignID, res)

	log.Info().Int("sent", res.Stats.Sent).Int("failed", res.Stats.Failed).
		Int("skipped", res.Stats.Skipped).Float64("success_rate", res.Stats.SuccessRate).
		Msg("campaign run finished")
	return res, nil
}

// persist writes per-recipient logs and the final campaign counters. Logging
// failures are reported but never fail the run; the emails already went out.
func (s *CampaignService) persist(campaignID int, res *RunResult) {
	if s.Repo == nil || campaignID == 0 {
		return
	}

	for _, group := range [][]model.Outcome{res.Sent, res.Failed, res.Skipped} {
		for _, o := range group {
			if err := s.Repo.LogOutcome(campaignID, o); err != nil {
				s.Log.Error().Err(err).Int("campaign_id", campaignID).Msg("log outcome")
			}
		}
	}

	status := "completed"
	if res.Stats.Attempts > 0 && res.Stats.Sent == 0 {
		status = "failed"
	}
	if err := s.Repo.Complete(campaignID, res.Stats, status); err != nil {
		s.Log.Error().Err(err).Int("campaign_id", campaignID).Msg("complete campaign")
	}
}

// publish emits the run's events. Best effort.
func (s *CampaignService) publish(campaignID int, res *RunResult) {
	if s.Queue == nil {
		return
	}

	for _, group := range [][]model.Outcome{res.Sent, res.Failed, res.Skipped} {
		for _, o := range group {
			payload := map[string]any{"campaign_id": campaignID, "outcome": o}
			if err := s.Queue.Publish(queue.TopicOutcome, payload); err != nil {
				s.Log.Warn().Err(err).Msg("publish outcome event")
			}
		}
	}

	payload := map[string]any{"campaign_id": campaignID, "stats": res.Stats}
	if err := s.Queue.Publish(queue.TopicCompleted, payload); err != nil {
		s.Log.Warn().Err(err).Msg("publish completed event")
	}
}

// RenderPreview renders a template for one synthetic recipient without
// sending anything.
func (s *CampaignService) RenderPreview(spec model.TemplateSpec, name string, row map[string]string) (string, string, error) {
	return s.Renderer.Render(spec, name, row)
}

// sendPipeline is the per-task render, build and deliver sequence handed to
// the engine.
type sendPipeline struct {
	renderer  *render.Renderer
	builder   *mail.Builder
	transport mail.Transport
	spec      model.TemplateSpec
}

var _ engine.Pipeline = (*sendPipeline)(nil)

func (p *sendPipeline) Process(ctx context.Context, task model.Task) error {
	subject, body, err := p.renderer.Render(p.spec, task.Name, task.Row)
	if err != nil {
		return err
	}

	m := p.builder.Build(task, p.spec, subject, body)
	return p.transport.Deliver(ctx, m, task.Recipients())
}
