package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TemirB/order-print-agent/internal/domain"
	"github.com/TemirB/order-print-agent/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

// Engine is the control surface the API needs from the sync engine.
type Engine interface {
	Poll(ctx context.Context) (bool, error)
	Orders() []domain.Order
	State() domain.EngineState
	AutoDispatchEnabled() bool
	SetAutoDispatch(enabled bool) bool
	RunSingle(ctx context.Context, id int64) error
}

// DetailReader serves order bodies for preview; in main this is the LRU
// cache in front of the source.
type DetailReader interface {
	Detail(ctx context.Context, id int64) (*domain.OrderDetail, error)
}

type Ledger interface {
	Stats(ctx context.Context, since int64) (domain.LedgerStats, error)
	History(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error)
}

type Server struct {
	engine  Engine
	details DetailReader
	ledger  Ledger
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(engine Engine, details DetailReader, ledger Ledger,
	logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		engine:  engine,
		details: details,
		ledger:  ledger,
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/status", s.getStatus)
	r.Get("/orders", s.listOrders)
	r.Get("/orders/{order_id}/detail", s.getDetail)
	r.Post("/orders/{order_id}/reprint", s.reprint)
	r.Post("/sync", s.triggerSync)
	r.Post("/auto-dispatch", s.setAutoDispatch)
	r.Get("/stats", s.getStats)
	r.Get("/history", s.getHistory)

	s.router = r
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"state":         s.engine.State(),
		"auto_dispatch": s.engine.AutoDispatchEnabled(),
	})
}

func (s *Server) listOrders(w http.ResponseWriter, _ *http.Request) {
	orders := s.engine.Orders()
	writeJSON(w, map[string]any{
		"orders": orders,
		"count":  len(orders),
	})
}

func (s *Server) getDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	t0 := time.Now()
	detail, err := s.details.Detail(r.Context(), id)
	if err != nil {
		s.sourceError(w, id, err)
		return
	}
	observability.AppendServerTiming(w, "detail", float64(time.Since(t0).Microseconds())/1000.0, "")

	writeJSON(w, detail)
}

func (s *Server) reprint(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := s.engine.RunSingle(r.Context(), id); err != nil {
		s.logger.Warn("reprint request failed", zap.Int64("order_id", id), zap.Error(err))
		s.sourceError(w, id, err)
		return
	}
	writeJSON(w, map[string]any{
		"order_id": id,
		"success":  true,
	})
}

func (s *Server) triggerSync(w http.ResponseWriter, r *http.Request) {
	started, err := s.engine.Poll(r.Context())
	if err != nil {
		http.Error(w, "sync failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{
		"started": started,
	})
}

func (s *Server) setAutoDispatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil || req.Enabled == nil {
		http.Error(w, `body must be {"enabled": true|false}`, http.StatusBadRequest)
		return
	}

	enabled := s.engine.SetAutoDispatch(*req.Enabled)
	writeJSON(w, map[string]any{
		"enabled": enabled,
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	since := startOfDay(time.Now())
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "since must be a unix timestamp", http.StatusBadRequest)
			return
		}
		since = n
	}

	t0 := time.Now()
	stats, err := s.ledger.Stats(r.Context(), since)
	if err != nil {
		s.logger.Error("stats query failed", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	observability.AppendServerTiming(w, "db", float64(time.Since(t0).Microseconds())/1000.0, "")

	writeJSON(w, stats)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	t0 := time.Now()
	records, err := s.ledger.History(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("history query failed", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	observability.AppendServerTiming(w, "db", float64(time.Since(t0).Microseconds())/1000.0, "")

	writeJSON(w, map[string]any{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
}

// sourceError maps upstream/dispatch failures onto HTTP statuses: a missing
// order is the caller's fault, everything upstream is a gateway problem.
func (s *Server) sourceError(w http.ResponseWriter, id int64, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "no order with id "+strconv.FormatInt(id, 10), http.StatusNotFound)
	case errors.Is(err, domain.ErrSourceUnavailable),
		errors.Is(err, domain.ErrSourceRejected),
		errors.Is(err, domain.ErrDispatchFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "order_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "order id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// startOfDay returns local midnight, the default stats cutoff.
func startOfDay(now time.Time) int64 {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Unix()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}
