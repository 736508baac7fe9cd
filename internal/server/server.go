// Package server exposes the calculation engine over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/compare"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/history"
	"github.com/valyala/fasthttp"
)

const compareTimeout = 5 * time.Second

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// PlrResponse wraps a calculation with the request id assigned to it.
type PlrResponse struct {
	RequestID string                 `json:"request_id"`
	Result    *calculation.PlrResult `json:"result"`
}

// DiscoverResponse wraps a multiplier discovery with its request id.
type DiscoverResponse struct {
	RequestID string                                `json:"request_id"`
	Result    *calculation.DiscoverMultiplierResult `json:"result"`
}

// Server routes requests to the engine. History is optional; when set,
// every successful calculation is appended to it.
type Server struct {
	Engine  *calculation.CalculationEngine
	History *history.Store
	Logger  calculation.Logger
	Now     func() time.Time
}

// New creates a server over engine. store may be nil.
func New(engine *calculation.CalculationEngine, store *history.Store, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{Engine: engine, History: store, Logger: logger, Now: time.Now}
}

// Handler is the fasthttp entry point.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/health":
		s.only(ctx, fasthttp.MethodGet, s.handleHealth)
	case "/banks":
		s.only(ctx, fasthttp.MethodGet, s.handleBanks)
	case "/tax-table":
		s.only(ctx, fasthttp.MethodGet, s.handleTaxTable)
	case "/plr":
		s.only(ctx, fasthttp.MethodPost, s.handlePlr)
	case "/plr/discover":
		s.only(ctx, fasthttp.MethodPost, s.handleDiscover)
	case "/plr/compare":
		s.only(ctx, fasthttp.MethodPost, s.handleCompare)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "route not found: "+path)
	}

	s.Logger.Info("http request",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds())
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "plrgo",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.Logger.Info("servidor HTTP iniciado", "addr", addr)
	return srv.ListenAndServe(addr)
}

func (s *Server) only(ctx *fasthttp.RequestCtx, method string, h fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h(ctx)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBanks(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, domain.Banks())
}

func (s *Server) handleTaxTable(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.Engine.TaxCalc.Brackets)
}

func (s *Server) handlePlr(ctx *fasthttp.RequestCtx) {
	var in calculation.PlrInput
	if err := json.Unmarshal(ctx.PostBody(), &in); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.Engine.CalculatePlr(in)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	if s.History != nil {
		if err := s.History.Append(history.NewEntry(result.Calculation, s.Now())); err != nil {
			s.Logger.Warn("falha ao gravar histórico", "error", err)
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, PlrResponse{RequestID: uuid.NewString(), Result: result})
}

func (s *Server) handleDiscover(ctx *fasthttp.RequestCtx) {
	var in calculation.DiscoverMultiplierInput
	if err := json.Unmarshal(ctx.PostBody(), &in); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.Engine.DiscoverMultiplier(in)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, DiscoverResponse{RequestID: uuid.NewString(), Result: result})
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var opts compare.CompareOptions
	if err := json.Unmarshal(ctx.PostBody(), &opts); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()
	set, err := compare.NewCompareEngine(s.Engine).Compare(c, opts)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownBank):
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
