// internal/handler/upload_handler.go
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxUploadBytes = 32 << 20 // 32 MiB

var sheetExtensions = map[string]bool{".xlsx": true, ".csv": true}
var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// UploadHandler stores recipient sheets and optional template images under
// the upload directory. Stored names are uuid-prefixed so concurrent uploads
// of the same filename never collide.
type UploadHandler struct {
	UploadDir string
	Log       zerolog.Logger
}

// Upload accepts a multipart form with a required "sheet" part (.xlsx or
// .csv) and optional image_1..image_3 parts overriding the inline image of
// the matching built-in template. It responds with the stored filenames the
// send endpoint expects.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	sheetName, err := h.store(r, "sheet", sheetExtensions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if sheetName == "" {
		http.Error(w, "sheet file is required", http.StatusBadRequest)
		return
	}

	images := map[string]string{}
	for _, id := range []string{"1", "2", "3"} {
		name, err := h.store(r, "image_"+id, imageExtensions)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if name != "" {
			images[id] = name
		}
	}

	h.Log.Info().Str("sheet", sheetName).Int("images", len(images)).Msg("upload stored")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sheet_file": sheetName,
		"images":     images,
	})
}

// store saves one named form file and returns the stored base name, or ""
// when the part is absent.
func (h *UploadHandler) store(r *http.Request, field string, allowed map[string]bool) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("unsupported %s file type %q", field, ext)
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload dir: %w", err)
	}

	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("store %s: %w", field, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store %s: %w", field, err)
	}
	return name, nil
}
