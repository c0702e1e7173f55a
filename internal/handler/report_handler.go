// internal/handler/report_handler.go
package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReportHandler serves generated outcome workbooks from the upload
// directory.
type ReportHandler struct {
	UploadDir string
	Log       zerolog.Logger
}

// Download streams one report workbook. The filename is reduced to its base
// name so path traversal cannot escape the upload directory.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	path := filepath.Join(h.UploadDir, name)

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	http.ServeFile(w, r, path)
}

// HealthHandler reports service liveness and database connectivity.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not_configured"
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			dbStatus = "error: " + err.Error()
		} else {
			dbStatus = "connected"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "healthy",
		"database": dbStatus,
	})
}
