package main

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/fonts"
)

// Response messages. Render failures never expose their cause.
const (
	msgGenerateFailed = "Failed to generate PDF"
	msgBusy           = "Server busy, retry later"
	msgInvalidBody    = "Invalid request body"
)

// defaultFilename names downloads when the request has no filename.
const defaultFilename = "document"

// maxFilenameLength bounds the requested download name.
const maxFilenameLength = 200

// filenamePattern allows names safe to place in a Content-Disposition header.
var filenamePattern = regexp.MustCompile(`^[\p{L}\p{N} ._()-]+$`)

// generateRequest is the JSON body of both generate endpoints.
type generateRequest struct {
	Markdown        string `json:"markdown"`
	FontFamily      string `json:"font_family"`
	SizeLevel       int    `json:"size_level"`
	Spacing         string `json:"spacing"`
	AutoWidthTables *bool  `json:"auto_width_tables"`
	Filename        string `json:"filename"`
	IncludeIndex    bool   `json:"include_index"`
	AddPageBreaks   bool   `json:"add_page_breaks"`
}

// Validate checks request shape. Font membership and size range are
// re-checked by the converter.
func (r generateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Markdown, validation.Required),
		validation.Field(&r.FontFamily, validation.Length(0, config.MaxFontLength)),
		validation.Field(&r.SizeLevel, validation.Min(mdpress.MinSizeLevel), validation.Max(mdpress.MaxSizeLevel)),
		validation.Field(&r.Spacing, validation.Length(0, config.MaxSpacingLength)),
		validation.Field(&r.Filename,
			validation.Length(0, maxFilenameLength),
			validation.Match(filenamePattern),
		),
	)
}

// input maps the request onto a conversion input. Fields left empty take the
// server's default profile.
func (r generateRequest) input(defaults mdpress.StyleProfile, tocTitle string, mode mdpress.Mode) mdpress.Input {
	p := defaults
	if r.FontFamily != "" {
		p.FontFamily = r.FontFamily
	}
	if r.SizeLevel != 0 {
		p.SizeLevel = r.SizeLevel
	}
	if r.Spacing != "" {
		p.Spacing = mdpress.Spacing(r.Spacing)
	}
	if r.AutoWidthTables != nil {
		p.AutoWidthTables = *r.AutoWidthTables
	}
	p.IncludeIndex = r.IncludeIndex
	p.AddPageBreaks = r.AddPageBreaks

	return mdpress.Input{
		Markdown: r.Markdown,
		Profile:  p,
		Mode:     mode,
		Title:    r.downloadName(),
		TOCTitle: tocTitle,
	}
}

// downloadName returns the attachment base name without extension.
func (r generateRequest) downloadName() string {
	name := strings.TrimSpace(r.Filename)
	if len(name) > 4 && strings.EqualFold(name[len(name)-4:], ".pdf") {
		name = name[:len(name)-4]
	}
	if name == "" {
		return defaultFilename
	}
	return name
}

// fontInfo describes one family in the GET /fonts response.
type fontInfo struct {
	Family     string `json:"family"`
	Registered bool   `json:"registered"`
	Monospace  bool   `json:"monospace"`
}

// Server serves the HTTP API. Previews are assembled by a shared converter;
// PDFs are rendered by converters borrowed from the pool.
type Server struct {
	pool          Pool
	preview       Converter
	registry      *fonts.Registry
	defaults      mdpress.StyleProfile
	tocTitle      string
	fontDir       string
	fontURLPrefix string
	maxBodyBytes  int64
	logger        *zap.Logger
}

// ServerConfig holds the dependencies of a Server.
type ServerConfig struct {
	Pool          Pool
	Preview       Converter
	Defaults      mdpress.StyleProfile
	TOCTitle      string
	FontDir       string // Served under FontURLPrefix when set
	FontURLPrefix string
	MaxBodyBytes  int64
	Logger        *zap.Logger
}

// NewServer creates a Server.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := cfg.FontURLPrefix
	if prefix == "" {
		prefix = config.DefaultFontURLPrefix
	}
	return &Server{
		pool:          cfg.Pool,
		preview:       cfg.Preview,
		registry:      cfg.Preview.Fonts(),
		defaults:      cfg.Defaults,
		tocTitle:      cfg.TOCTitle,
		fontDir:       cfg.FontDir,
		fontURLPrefix: prefix,
		maxBodyBytes:  cfg.MaxBodyBytes,
		logger:        logger,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/fonts", s.handleFonts)
	if s.fontDir != "" && s.fontURLPrefix != "/" {
		fileServer := http.StripPrefix(s.fontURLPrefix, http.FileServer(http.Dir(s.fontDir)))
		r.Get(s.fontURLPrefix+"*", fileServer.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/generate-pdf", s.handleGeneratePDF)
		r.Post("/generate-pdf-preview", s.handlePreview)
	})

	return r
}

// logRequests logs every request with its chi request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

// limitBody caps request bodies at maxBodyBytes.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.maxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleFonts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fontList(s.registry))
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	conv, err := s.pool.Acquire(ctx)
	if err != nil {
		s.logger.Warn("no converter available",
			zap.String("request_id", middleware.GetReqID(ctx)),
			zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, msgBusy)
		return
	}
	defer s.pool.Release(conv)

	result, err := conv.Convert(ctx, req.input(s.defaults, s.tocTitle, mdpress.ModeRender))
	if err != nil {
		s.writeConvertError(w, r, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": req.downloadName() + ".pdf",
	})
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Page-Count", strconv.Itoa(result.PageCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PDF)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.preview.Convert(r.Context(), req.input(s.defaults, s.tocTitle, mdpress.ModePreview))
	if err != nil {
		s.writeConvertError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Document.HTML))
}

// decodeRequest parses and validates the body, writing the error response
// itself when it fails.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (generateRequest, bool) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return req, false
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return req, false
	}
	return req, true
}

// writeConvertError maps conversion errors onto status codes.
func (s *Server) writeConvertError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Error("conversion failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgGenerateFailed)
}

// isValidationError reports whether err is caused by the request content.
func isValidationError(err error) bool {
	return errors.Is(err, mdpress.ErrEmptyMarkdown) ||
		errors.Is(err, mdpress.ErrUnsupportedFont) ||
		errors.Is(err, mdpress.ErrInvalidSizeLevel) ||
		errors.Is(err, mdpress.ErrInvalidMode)
}

// writeError writes {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
