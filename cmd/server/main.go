// cmd/server/main.go
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailburst/mailburst/internal/config"
	"github.com/mailburst/mailburst/internal/controller"
	"github.com/mailburst/mailburst/internal/db"
	"github.com/mailburst/mailburst/internal/handler"
	"github.com/mailburst/mailburst/internal/logger"
	"github.com/mailburst/mailburst/internal/mail"
	"github.com/mailburst/mailburst/internal/queue"
	"github.com/mailburst/mailburst/internal/render"
	"github.com/mailburst/mailburst/internal/repository"
	"github.com/mailburst/mailburst/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.ValidateSMTP(); err != nil {
		log.Fatal().Err(err).Msg("smtp configuration incomplete")
	}

	// DB is optional: without DATABASE_URL campaigns still run, they just
	// are not recorded.
	var campaignRepo repository.CampaignRepositoryInterface
	healthHandler := &handler.HealthHandler{}
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if err := db.EnsureSchema(conn); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		campaignRepo = repository.NewCampaignRepository(conn)
		healthHandler.DB = conn
		log.Info().Msg("database connected")
	} else {
		log.Warn().Msg("DATABASE_URL not set, campaign history disabled")
	}

	var events queue.Queue
	if cfg.AMQPURL != "" {
		q, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("broker connection failed")
		}
		defer q.Close()
		events = q
		log.Info().Msg("event broker connected")
	}

	campaignService := &service.CampaignService{
		Renderer:      render.New(),
		Transport:     mail.NewSMTPTransport(cfg.SMTP),
		SenderName:    cfg.SMTP.SenderName,
		SenderEmail:   cfg.SMTP.SenderEmail,
		DefaultImages: cfg.TemplateImages,
		Repo:          campaignRepo,
		Queue:         events,
		Log:           log,
	}

	campaignController := &controller.CampaignController{
		Service:   campaignService,
		Repo:      campaignRepo,
		UploadDir: cfg.Upload.Dir,
		Log:       log,
	}
	uploadHandler := &handler.UploadHandler{UploadDir: cfg.Upload.Dir, Log: log}
	reportHandler := &handler.ReportHandler{UploadDir: cfg.Upload.Dir, Log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/uploads", uploadHandler.Upload)
	r.Post("/campaigns/send", campaignController.SendCampaign)
	r.Post("/campaigns/preview", campaignController.PersonalizedPreview)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
	r.Get("/reports/{filename}", reportHandler.Download)
	r.Get("/health", healthHandler.Health)

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("server listening")
	if err := http.ListenAndServe(cfg.HTTP.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
