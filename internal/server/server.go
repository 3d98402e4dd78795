package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-siphon/internal/config"
	"github.com/example/go-siphon/internal/pinyin"
	"github.com/example/go-siphon/internal/text"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Transcriber converts Pinyin text into the requested notation.
type Transcriber interface {
	Transcribe(ctx context.Context, input string, format pinyin.Format, wrapper string) (string, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	format         pinyin.Format
	wrapper        string
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   4096,
		workers:        4,
		requestTimeout: 10 * time.Second,
		format:         pinyin.PinyinDiacritic,
		wrapper:        pinyin.DefaultWrapper,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /convert.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent conversions.
// Zero or less disables throttling.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request conversion deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithDefaultFormat sets the format used when a request names none.
func WithDefaultFormat(f pinyin.Format) Option {
	return func(o *options) { o.format = f }
}

// WithDefaultWrapper sets the LaTeX wrapper used when a request names none.
func WithDefaultWrapper(w string) Option {
	return func(o *options) { o.wrapper = w }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	conv Transcriber
	opts options
	sem  chan struct{} // semaphore for worker pool
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /formats, and POST /convert.
func NewHandler(conv Transcriber, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		conv: conv,
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/formats", h.handleFormats)
	mux.HandleFunc("/convert", h.handleConvert)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// FormatInfo describes one supported output format.
type FormatInfo struct {
	Name    string `json:"name"`
	IPA     bool   `json:"ipa"`
	Default bool   `json:"default"`
}

func (h *handler) handleFormats(w http.ResponseWriter, _ *http.Request) {
	formats := pinyin.Formats()
	out := make([]FormatInfo, 0, len(formats))
	for _, f := range formats {
		out = append(out, FormatInfo{
			Name:    f.String(),
			IPA:     f.IsIPA(),
			Default: f == h.opts.format,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type convertRequest struct {
	Text    string `json:"text"`
	Format  string `json:"format"`
	Wrapper string `json:"wrapper"`
}

type convertResponse struct {
	Output string `json:"output"`
	Format string `json:"format"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	format := h.opts.format
	if req.Format != "" {
		f, err := pinyin.ParseFormat(req.Format)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	wrapper := req.Wrapper
	if wrapper == "" {
		wrapper = h.opts.wrapper
	}

	// Acquire a worker slot, honouring cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	out, err := h.conv.Transcribe(ctx, req.Text, format, wrapper)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		attrs := []any{
			slog.String("format", format.String()),
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		}
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			h.log.WarnContext(r.Context(), "conversion timed out", attrs...)
			writeError(w, http.StatusGatewayTimeout, "conversion timed out")
		case isInputError(err):
			h.log.InfoContext(r.Context(), "conversion rejected", attrs...)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.log.ErrorContext(r.Context(), "conversion failed", attrs...)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.log.InfoContext(r.Context(), "conversion complete",
		slog.String("format", format.String()),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", durationMS),
		slog.Int("output_len", len(out)),
	)

	writeJSON(w, http.StatusOK, convertResponse{Output: out, Format: format.String()})
}

// isInputError reports whether err is caused by the submitted text rather
// than by the server.
func isInputError(err error) bool {
	for _, target := range []error{
		pinyin.ErrRhymeNotFound,
		pinyin.ErrInvalidInitial,
		pinyin.ErrInvalidRhyme,
		pinyin.ErrToneConversion,
		text.ErrEmptyText,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// pipeline: the production Transcriber
// ---------------------------------------------------------------------------

// pipeline runs the text preparation and conversion used by the CLI.
type pipeline struct {
	prep text.PrepareOptions
}

// NewTranscriber returns the default Transcriber. When hanzi is set, Han
// characters are converted to numbered Pinyin first.
func NewTranscriber(hanzi bool) Transcriber {
	return pipeline{prep: text.PrepareOptions{Hanzi: hanzi}}
}

func (p pipeline) Transcribe(ctx context.Context, input string, format pinyin.Format, wrapper string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := text.ConvertText(pinyin.NewConverter(format, wrapper), input, p.prep)
		done <- result{out: out, err: err}
	}()

	select {
	case res := <-done:
		return res.out, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ---------------------------------------------------------------------------
// Server wires the handler into net/http.Server with graceful shutdown.
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	conv            Transcriber
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New returns a Server for cfg. A nil conv selects NewTranscriber with
// cfg.Convert.Hanzi.
func New(cfg config.Config, conv Transcriber) *Server {
	if conv == nil {
		conv = NewTranscriber(cfg.Convert.Hanzi)
	}
	return &Server{
		cfg:             cfg,
		conv:            conv,
		logger:          slog.Default(),
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// WithLogger overrides the request logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	s.logger = l
	return s
}

func (s *Server) handlerOptions() ([]Option, error) {
	format, err := config.NormalizeFormat(s.cfg.Convert.Format)
	if err != nil {
		return nil, err
	}

	return []Option{
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second),
		WithDefaultFormat(format),
		WithDefaultWrapper(s.cfg.Convert.Wrapper),
		WithLogger(s.logger),
	}, nil
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	handlerOpts, err := s.handlerOptions()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           NewHandler(s.conv, handlerOpts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.InfoContext(ctx, "server listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
