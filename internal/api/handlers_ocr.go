package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagemark/internal/ocr"
)

func (s *Server) handleOcr(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := r.FormValue("service")
	if name == "" {
		name = s.cfg.OCRService
	}
	if name == "" {
		jsonError(w, "no OCR service configured; set OCR_SERVICE or pass service=", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, "file exceeds max size", http.StatusRequestEntityTooLarge)
		return
	}

	svc, err := ocr.New(r.Context(), name, s.ocrConfig(), s.ocrStats)
	if err != nil {
		var cfgErr *ocr.ConfigError
		if errors.As(err, &cfgErr) {
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var text string
	if strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		text, err = s.ocrPDF(r, svc, data)
	} else {
		text, err = svc.Ocr(r.Context(), data)
	}
	if err != nil {
		s.log.Error("ocr failed", "service", name, "error", err)
		jsonError(w, "ocr failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"service": name,
		"text":    text,
	})
}

// ocrPDF rasterizes an uploaded PDF and runs OCR page by page.
func (s *Server) ocrPDF(r *http.Request, svc ocr.Service, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "pagemark-ocr-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	runner := ocr.NewRunner(svc, s.log)
	return runner.ProcessPDF(r.Context(), tmp.Name())
}

func (s *Server) ocrConfig() ocr.Config {
	return ocr.Config{
		GoogleAPIKey:  s.cfg.GoogleAPIKey,
		AzureEndpoint: s.cfg.AzureEndpoint,
		AzureKey:      s.cfg.AzureKey,
		AWSRegion:     s.cfg.AWSRegion,
	}
}
