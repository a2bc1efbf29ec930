// Package server exposes the time-value calculator over HTTP: a JSON API and
// an embedded single-page UI.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/iwvelando/time-value/internal/cache"
	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/field"
	"github.com/iwvelando/time-value/pkg/format"
	"github.com/iwvelando/time-value/pkg/output"
	"github.com/iwvelando/time-value/pkg/tvm"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	cache       cache.Cache
	defaults    config.Defaults
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and
// calculation API. A nil cache disables caching.
func NewHandler(logger *zap.Logger, conf *config.Configuration, c cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	if c == nil {
		c = cache.Noop{}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		cache:       c,
		defaults:    conf.Defaults,
		maxBodySize: conf.Server.MaxBodySizeBytes(),
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/future-value", h.handleCalculation(calculator.FutureValue))
	mux.HandleFunc("/api/present-value", h.handleCalculation(calculator.PresentValue))
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/field", h.handleField)
	mux.HandleFunc("/api/frequencies", h.handleFrequencies)
	mux.HandleFunc("/api/defaults", h.handleDefaults)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/health", h.handleHealth)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	limiter := newClientLimiter(conf.Server.RateLimit, conf.Server.RateBurst)
	return withRequestID(logger, limiter.middleware(logger, mux))
}

// calculationRequest is the body of the future and present value endpoints.
// Amount fields left out fall back to the configured defaults. annualRate is
// a decimal fraction.
type calculationRequest struct {
	Principal     *float64 `json:"principal,omitempty"`
	FutureValue   *float64 `json:"futureValue,omitempty"`
	AnnualRate    *float64 `json:"annualRate,omitempty"`
	Frequency     string   `json:"frequency,omitempty"`
	CustomPeriods *float64 `json:"customPeriods,omitempty"`
	Years         *float64 `json:"years,omitempty"`
}

type calculationResponse struct {
	Value       float64 `json:"value"`
	Formatted   string  `json:"formatted"`
	Description string  `json:"description"`
	Cached      bool    `json:"cached"`
}

func (h *handler) handleCalculation(mode calculator.Mode) http.HandlerFunc {
	op := "server.handleFutureValue"
	if mode == calculator.PresentValue {
		op = "server.handlePresentValue"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var req calculationRequest
		if !h.decodeBody(w, r, &req, op) {
			return
		}

		in, err := h.buildInput(mode, req)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		key := cache.Key(mode.Token(), in)
		if entry, ok := h.cache.Get(r.Context(), key); ok {
			h.writeJSON(w, http.StatusOK, calculationResponse{
				Value:       entry.Value,
				Formatted:   entry.Formatted,
				Description: entry.Description,
				Cached:      true,
			})
			return
		}

		var value float64
		if mode == calculator.PresentValue {
			value, err = tvm.ComputePresentValue(in)
		} else {
			value, err = tvm.ComputeFutureValue(in)
		}
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		entry := cache.Entry{
			Value:       tvm.TruncateToCents(value),
			Formatted:   format.Amount(value),
			Description: calculator.Describe(mode, in),
		}
		if err := h.cache.Set(r.Context(), key, entry); err != nil {
			h.logger.Warn("failed to cache result",
				zap.String("op", op),
				zap.String("key", key),
				zap.Error(err),
			)
		}

		h.logger.Debug("calculation computed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Float64("value", entry.Value),
		)

		h.writeJSON(w, http.StatusOK, calculationResponse{
			Value:       entry.Value,
			Formatted:   entry.Formatted,
			Description: entry.Description,
		})
	}
}

// buildInput overlays the request on the configured defaults.
func (h *handler) buildInput(mode calculator.Mode, req calculationRequest) (tvm.Input, error) {
	in := calculator.NewSession(h.defaults).Input()

	amount := req.Principal
	if mode == calculator.PresentValue {
		amount = req.FutureValue
		if amount == nil {
			amount = req.Principal
		}
	}
	if amount != nil {
		in.Amount = *amount
	}
	if req.AnnualRate != nil {
		in.AnnualRate = *req.AnnualRate
	}
	if req.Years != nil {
		in.Years = *req.Years
	}

	switch {
	case req.CustomPeriods != nil:
		in.Frequency = compounding.NewCustom(*req.CustomPeriods)
	case req.Frequency != "":
		f, ok := compounding.Parse(req.Frequency)
		if !ok {
			return tvm.Input{}, fmt.Errorf("unknown frequency %q", req.Frequency)
		}
		in.Frequency = f
	}

	return in, in.Validate()
}

type compareResponse struct {
	Principal  float64                `json:"principal"`
	AnnualRate float64                `json:"annualRate"`
	Years      float64                `json:"years"`
	Rows       []output.ComparisonRow `json:"rows"`
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	in := calculator.NewSession(h.defaults).Input()
	query := r.URL.Query()

	// Amounts follow the same edit rules as the UI fields.
	for _, param := range []struct {
		name  string
		label string
		dst   *float64
	}{
		{"principal", calculator.LabelPrincipal, &in.Amount},
		{"years", calculator.LabelYears, &in.Years},
	} {
		raw := query.Get(param.name)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		st := field.Edit(field.New("", *param.dst), raw)
		if msg := field.Message(st, param.label); msg != "" {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid %s %q: %s", param.name, raw, msg), op)
			return
		}
		*param.dst = st.Value
	}

	if raw := query.Get("rate"); strings.TrimSpace(raw) != "" {
		rate, err := field.Parse(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid rate %q", raw), op)
			return
		}
		in.AnnualRate = rate
	}

	comparisons, err := tvm.Compare(in.Amount, in.AnnualRate, in.Years)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, compareResponse{
		Principal:  in.Amount,
		AnnualRate: in.AnnualRate,
		Years:      in.Years,
		Rows:       output.NewComparisonRows(comparisons),
	})
}

// fieldRequest carries a field's current state and the text just typed.
type fieldRequest struct {
	field.State
	Label string `json:"label"`
	Text  string `json:"text"`
}

type fieldResponse struct {
	field.State
	Status    string `json:"status"`
	ShowError bool   `json:"showError"`
	Message   string `json:"message,omitempty"`
}

func (h *handler) handleField(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleField"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req fieldRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = "Value"
	}

	next := field.Edit(req.State, req.Text)
	h.writeJSON(w, http.StatusOK, fieldResponse{
		State:     next,
		Status:    next.Status().String(),
		ShowError: field.ShowError(next),
		Message:   field.Message(next, label),
	})
}

type frequencyResponse struct {
	Token          string  `json:"token"`
	Label          string  `json:"label"`
	Name           string  `json:"name"`
	PeriodsPerYear float64 `json:"periodsPerYear"`
}

func (h *handler) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	options := compounding.Options()
	resp := make([]frequencyResponse, 0, len(options))
	for _, opt := range options {
		resp = append(resp, frequencyResponse{
			Token:          opt.Token,
			Label:          opt.Label,
			Name:           opt.Frequency.DisplayName(),
			PeriodsPerYear: opt.Frequency.PeriodsPerYear(),
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type defaultsResponse struct {
	Principal      string  `json:"principal"`
	PrincipalValue float64 `json:"principalValue"`
	Years          string  `json:"years"`
	YearsValue     float64 `json:"yearsValue"`
	RatePercent    float64 `json:"ratePercent"`
	Frequency      string  `json:"frequency"`
	RateMin        float64 `json:"rateMin"`
	RateMax        float64 `json:"rateMax"`
	RateStep       float64 `json:"rateStep"`
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	s := calculator.NewSession(h.defaults)
	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Principal:      s.Amount.State.RawText,
		PrincipalValue: s.Amount.Value(),
		Years:          s.Years.State.RawText,
		YearsValue:     s.Years.Value(),
		RatePercent:    s.RatePercent(),
		Frequency:      s.Frequency.Token(),
		RateMin:        constants.RateSliderMin,
		RateMax:        constants.RateSliderMax,
		RateStep:       constants.RateSliderStep,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody decodes a size-limited JSON body into dst. It writes the error
// response itself and reports whether decoding succeeded.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before writing the status so an encoding failure
// still produces a 500 with an error body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
