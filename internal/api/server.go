// Package api exposes the calculator over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/series"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
	maxBodyBytes       = 32 << 20
)

type Server struct {
	calculator *calculator.Calculator
	metrics    *metrics.Metrics
	logger     *logger.Logger
	router     *mux.Router
	httpServer *http.Server
	listener   net.Listener
}

func NewServer(calc *calculator.Calculator, m *metrics.Metrics, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		calculator: calc,
		metrics:    m,
		logger:     log,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/indicators", s.handleListIndicators).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/indicators/{indicator}", s.handleCalculate).Methods(http.MethodPost)
	s.router = router

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on address and serves in the background.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("HTTP server listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListIndicators(w http.ResponseWriter, r *http.Request) {
	infos := make([]IndicatorInfo, 0, len(types.AllIndicatorTypes))

	for _, t := range types.AllIndicatorTypes {
		infos = append(infos, IndicatorInfo{
			Name:          t,
			DefaultParams: types.DefaultParams(t),
			NeedsOHLC:     t.NeedsOHLC(),
			NeedsVolume:   t.NeedsVolume(),
		})
	}

	s.write(w, r, http.StatusOK, infos)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseIndicatorType(mux.Vars(r)["indicator"])
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeIndicatorNotFound, "unknown indicator", err))

		return
	}

	var req CalculateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err))

		return
	}

	if req.Close == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeMissingParameter, "close series is required"))

		return
	}

	in := types.SeriesInput{
		Close:  req.Close,
		High:   req.High,
		Low:    req.Low,
		Volume: req.Volume,
	}

	result, err := s.calculator.Calculate(kind, in, req.Params.Resolve(kind))
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	resp := CalculateResponse{
		Indicator: result.Indicator,
		Params:    result.Params,
		Series:    make([]SeriesResponse, len(result.Series)),
	}

	for i, line := range result.Series {
		resp.Series[i] = SeriesResponse{
			Name:   line.Name,
			Values: series.ToNullable(line.Values),
		}
	}

	s.write(w, r, http.StatusOK, resp)
}

func decode(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), contentTypeMsgpack) {
		dec := msgpack.NewDecoder(body)
		dec.SetCustomStructTag("json")

		return dec.Decode(v)
	}

	return json.NewDecoder(body).Decode(v)
}

// write encodes v as msgpack when the client asks for it and as JSON otherwise.
func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)

		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")

		if err := enc.Encode(v); err != nil {
			s.logger.Error("Failed to encode response", zap.Error(err))
		}

		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}

	s.write(w, r, status, ErrorResponse{Code: int(code), Error: code.String(), Message: err.Error()})
}

func statusFor(code errors.ErrorCode) int {
	switch {
	case code.IsValidation():
		return http.StatusBadRequest
	case code == errors.ErrCodeIndicatorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
