// Package api serves the feedback analysis endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"feedback-insights-go/internal/dataset"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

const (
	msgNoFile       = "No file provided"
	msgInvalidType  = "Invalid file type. Please upload an Excel file (.xlsx, .xls) or CSV file (.csv)"
	msgNoFeedback   = "No valid feedback data found in the file"
	msgAnalyzeError = "Failed to analyze the file. Please check the file format and try again."
	msgPreviewError = "Failed to generate file preview. Please check the file format."

	// multipartOverhead covers boundaries and form fields around the file.
	multipartOverhead = 1 << 20
)

// Analyzer runs one analysis over parsed records.
type Analyzer interface {
	Analyze(ctx context.Context, records []types.FeedbackRecord) types.AnalysisResult
}

type Options struct {
	MaxUploadBytes int64
	DatasetPath    string
	DemoLimit      int
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type Handler struct {
	analyzer Analyzer
	opts     Options
	log      *logger.Logger
}

func NewHandler(a Analyzer, opts Options, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{analyzer: a, opts: opts, log: log.Component("api")}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/healthz", h.health)
	if h.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.opts.Metrics)
	}
	r.Get("/demo", h.demo)
	r.Route("/api", func(r chi.Router) {
		r.Post("/preview", h.preview)
		r.Post("/analyze", h.analyze)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "preview")

	file, name, status, msg := h.upload(w, r)
	if file == nil {
		reqLog.WithField("status", status).Warn(msg)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	defer file.Close()

	p, err := dataset.Preview(file, name)
	if err != nil {
		reqLog.WithError(err).Error("preview failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgPreviewError})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqLog := h.log.WithRequest(r).WithField("handler", "analyze")

	file, name, status, msg := h.upload(w, r)
	if file == nil {
		reqLog.WithField("status", status).Warn(msg)
		writeJSON(w, status, types.AnalysisResponse{Status: "error", Error: msg})
		return
	}
	defer file.Close()

	records, err := dataset.Parse(file, name, h.log)
	h.respond(w, r, reqLog.WithField("file", name), records, err, start)
}

func (h *Handler) demo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqLog := h.log.WithRequest(r).WithField("handler", "demo").WithField("dataset_path", h.opts.DatasetPath)

	records, err := dataset.Load(h.opts.DatasetPath, h.log)
	if err == nil && h.opts.DemoLimit > 0 && len(records) > h.opts.DemoLimit {
		records = records[:h.opts.DemoLimit]
	}
	h.respond(w, r, reqLog, records, err, start)
}

// respond runs the analysis over parsed records and writes the envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, reqLog *logrus.Entry, records []types.FeedbackRecord, err error, start time.Time) {
	switch {
	case errors.Is(err, dataset.ErrNoDataRows) || (err == nil && len(records) == 0):
		reqLog.Warn("no feedback rows")
		writeJSON(w, http.StatusBadRequest, types.AnalysisResponse{Status: "error", Error: msgNoFeedback})
		return
	case err != nil:
		reqLog.WithError(err).Error("parse failed")
		writeJSON(w, http.StatusInternalServerError, types.AnalysisResponse{Status: "error", Error: msgAnalyzeError})
		return
	}

	res := h.analyzer.Analyze(r.Context(), records)
	elapsed := time.Since(start)
	reqLog.WithField("records", len(records)).
		WithField("path", res.AnalysisPath).
		WithField("duration_ms", elapsed.Milliseconds()).
		Info("analysis served")

	writeJSON(w, http.StatusOK, types.AnalysisResponse{
		Status:         "success",
		Analysis:       &res,
		ProcessingTime: fmt.Sprintf("%.1f seconds", elapsed.Seconds()),
	})
}

// upload extracts the "file" form field. On rejection file is nil and
// status/msg describe the response.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) (file io.ReadCloser, name string, status int, msg string) {
	if h.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes+multipartOverhead)
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", http.StatusRequestEntityTooLarge, h.tooLargeMessage()
		}
		return nil, "", http.StatusBadRequest, msgNoFile
	}
	if !dataset.Supported(header.Filename) {
		f.Close()
		return nil, "", http.StatusBadRequest, msgInvalidType
	}
	if h.opts.MaxUploadBytes > 0 && header.Size > h.opts.MaxUploadBytes {
		f.Close()
		return nil, "", http.StatusBadRequest, h.tooLargeMessage()
	}
	return f, header.Filename, 0, ""
}

func (h *Handler) tooLargeMessage() string {
	return fmt.Sprintf("File too large. Maximum size is %dMB", h.opts.MaxUploadBytes>>20)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
