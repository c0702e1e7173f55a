// cmd/sender/main.go
//
// Command-line campaign runner. Reads a recipient sheet and dispatches one
// campaign without the HTTP server, printing a summary when done. With
// -dry-run the built messages are printed instead of delivered, which works
// without SMTP credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mailburst/mailburst/internal/config"
	"github.com/mailburst/mailburst/internal/logger"
	"github.com/mailburst/mailburst/internal/mail"
	"github.com/mailburst/mailburst/internal/model"
	"github.com/mailburst/mailburst/internal/render"
	"github.com/mailburst/mailburst/internal/report"
	"github.com/mailburst/mailburst/internal/service"
	"github.com/mailburst/mailburst/internal/sheet"
)

func main() {
	var (
		sheetPath = flag.String("sheet", "", "path to the recipient sheet (.xlsx or .csv)")
		template  = flag.String("template", "", "built-in template id (1-3); empty for custom")
		subject   = flag.String("subject", "", "custom template subject")
		body      = flag.String("body", "", "custom template HTML body")
		presetID  = flag.String("preset", "2", "performance preset (1-4)")
		dryRun    = flag.Bool("dry-run", false, "print messages instead of sending")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if *sheetPath == "" {
		log.Fatal().Msg("-sheet is required")
	}

	table, err := sheet.Read(*sheetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read sheet")
	}

	spec := model.TemplateSpec{BuiltinID: *template}
	if spec.IsCustom() {
		spec.Subject = *subject
		spec.Body = *body
	}

	preset, ok := model.PresetByID(*presetID)
	if !ok {
		log.Fatal().Str("preset", *presetID).Msg("unknown preset, expected 1-4")
	}

	var transport mail.Transport
	if *dryRun {
		transport = &mail.DryRunTransport{Out: os.Stdout}
	} else {
		if err := cfg.ValidateSMTP(); err != nil {
			log.Fatal().Err(err).Msg("smtp configuration incomplete")
		}
		transport = mail.NewSMTPTransport(cfg.SMTP)
	}

	svc := &service.CampaignService{
		Renderer:      render.New(),
		Transport:     transport,
		SenderName:    cfg.SMTP.SenderName,
		SenderEmail:   cfg.SMTP.SenderEmail,
		DefaultImages: cfg.TemplateImages,
		Log:           log,
	}

	// Ctrl-C fails the tasks that have not started and lets the rest finish.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := svc.Run(ctx, service.RunParams{
		Table:  table,
		Spec:   spec,
		Preset: preset,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("campaign run failed")
	}

	fmt.Printf("sent: %d  failed: %d  skipped: %d  success rate: %.1f%%\n",
		result.Stats.Sent, result.Stats.Failed, result.Stats.Skipped, result.Stats.SuccessRate)

	if !*dryRun {
		if name, err := report.WriteSuccess(cfg.Upload.Dir, spec.Label(), result.Sent); err != nil {
			log.Error().Err(err).Msg("write success report")
		} else if name != "" {
			fmt.Println("success report:", name)
		}

		notSent := append(append([]model.Outcome{}, result.Failed...), result.Skipped...)
		if name, err := report.WriteFailure(cfg.Upload.Dir, spec.Label(), notSent); err != nil {
			log.Error().Err(err).Msg("write failure report")
		} else if name != "" {
			fmt.Println("failure report:", name)
		}
	}
}
