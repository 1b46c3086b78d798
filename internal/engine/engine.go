package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TemirB/order-print-agent/internal/domain"
	"github.com/TemirB/order-print-agent/internal/observability"

	"go.uber.org/zap"
)

//go:generate mockgen -source internal/engine/engine.go -destination=internal/engine/engine_mock_test.go -package=engine

type OrderSource interface {
	List(ctx context.Context, status string, from, to int64) ([]domain.Order, error)
	Detail(ctx context.Context, id int64) (*domain.OrderDetail, error)
}

type Ledger interface {
	Has(ctx context.Context, ids []int64) (map[int64]struct{}, error)
	Upsert(ctx context.Context, rec *domain.DispatchRecord) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, detail *domain.OrderDetail, opts domain.DispatchOptions) error
}

type Options struct {
	Status          string
	PollInterval    time.Duration
	PollWindow      time.Duration
	DispatchDelay   time.Duration
	DispatchTimeout time.Duration
	Dispatch        domain.DispatchOptions
}

func (o *Options) withDefaults() {
	if o.Status == "" {
		o.Status = "pending"
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 30 * time.Second
	}
	if o.PollWindow <= o.PollInterval {
		o.PollWindow = 2 * o.PollInterval
	}
	if o.DispatchDelay < 0 {
		o.DispatchDelay = 0
	}
	if o.DispatchTimeout <= 0 {
		o.DispatchTimeout = 30 * time.Second
	}
}

// Engine owns the working set of known orders. It polls the source on a
// timer and on demand, annotates every order against the ledger, and hands
// undispatched newcomers to the dispatch walk when auto-dispatch is on.
//
// The working set is session-scoped: rebuilt on Start, thrown away on Stop.
// Only the ledger survives a restart.
type Engine struct {
	source     OrderSource
	ledger     Ledger
	dispatcher Dispatcher
	bus        *Bus
	logger     *zap.Logger
	metrics    observability.Metrics
	opts       Options

	mu        sync.Mutex // guards orders, state, runCancel
	orders    []domain.Order
	state     domain.EngineState
	runCtx    context.Context
	runCancel context.CancelFunc

	autoDispatch atomic.Bool
	syncInFlight atomic.Bool

	// printMu serializes access to the physical output across the batch walk
	// and manual reprints.
	printMu sync.Mutex

	wg sync.WaitGroup
}

func New(source OrderSource, ledger Ledger, dispatcher Dispatcher, bus *Bus,
	logger *zap.Logger, metrics observability.Metrics, opts Options) *Engine {
	opts.withDefaults()
	return &Engine{
		source:     source,
		ledger:     ledger,
		dispatcher: dispatcher,
		bus:        bus,
		logger:     logger,
		metrics:    metrics,
		opts:       opts,
		state:      domain.StateStopped,
	}
}

// Start performs one display-only load of the whole pending backlog, then
// begins the periodic sync. A freshly started engine never prints: the
// initial load does not reach the dispatch walk regardless of the
// auto-dispatch flag.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != domain.StateStopped {
		e.mu.Unlock()
		return nil
	}
	e.state = domain.StateStarting
	e.orders = nil
	runCtx, cancel := context.WithCancel(ctx)
	e.runCtx = runCtx
	e.runCancel = cancel
	e.mu.Unlock()

	e.bus.Publish(Event{Kind: EventStatusUpdate, State: domain.StateStarting, Message: "starting"})
	e.logger.Info("engine starting",
		zap.Duration("poll_interval", e.opts.PollInterval),
		zap.Duration("poll_window", e.opts.PollWindow),
	)

	// Initial load: the whole pending backlog, date_from = 0. Display only.
	if err := e.sync(runCtx, 0, 0, true); err != nil {
		e.logger.Warn("initial load failed, will retry on next tick", zap.Error(err))
	}

	e.mu.Lock()
	e.state = domain.StateRunning
	e.mu.Unlock()
	e.bus.Publish(Event{Kind: EventStatusUpdate, State: domain.StateRunning, Message: e.statusMessage()})

	e.wg.Add(1)
	go e.loop(runCtx)
	return nil
}

// Stop cancels the timer, disables auto-dispatch and prevents new batches
// from starting. A dispatch attempt already in flight is not waited for
// here; it observes the cancelled context on its own. Idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state == domain.StateStopped {
		e.mu.Unlock()
		return
	}
	cancel := e.runCancel
	e.runCancel = nil
	e.state = domain.StateStopped
	e.mu.Unlock()

	e.autoDispatch.Store(false)
	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
	e.bus.Publish(Event{Kind: EventStatusUpdate, State: domain.StateStopped, Message: "stopped"})
	e.logger.Info("engine stopped")
}

func (e *Engine) loop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Poll errors are surfaced as status events; the next tick
			// retries at a fixed interval.
			_, _ = e.Poll(ctx)
		}
	}
}

// Poll runs one sync of the rolling window ending now. If a poll is already
// in flight the call is a no-op and returns started=false; manual triggers
// are not queued.
func (e *Engine) Poll(ctx context.Context) (bool, error) {
	if !e.syncInFlight.CompareAndSwap(false, true) {
		return false, nil
	}
	defer e.syncInFlight.Store(false)

	now := time.Now()
	from := now.Add(-e.opts.PollWindow).Unix()
	return true, e.sync(ctx, from, now.Unix(), false)
}

// sync fetches one window and reconciles it against the working set and the
// ledger. Any failure leaves the working set untouched. When initial is
// true the fetch replaces the working set and nothing is dispatched.
func (e *Engine) sync(ctx context.Context, from, to int64, initial bool) error {
	t0 := time.Now()

	fetched, err := e.source.List(ctx, e.opts.Status, from, to)
	if err != nil {
		return e.pollFailed(err)
	}

	ids := make([]int64, 0, len(fetched))
	for _, o := range fetched {
		ids = append(ids, o.ID)
	}
	recorded, err := e.ledger.Has(ctx, ids)
	if err != nil {
		return e.pollFailed(err)
	}
	for i := range fetched {
		fetched[i].Dispatched = exists(recorded, fetched[i].ID)
	}

	var fresh []domain.Order
	e.mu.Lock()
	if initial {
		fresh = append(fresh, fetched...)
		e.orders = fresh
	} else {
		for _, o := range fetched {
			if i := e.indexLocked(o.ID); i >= 0 {
				// Known order: refresh the ledger-derived flag so the
				// working set never goes stale.
				e.orders[i].Dispatched = o.Dispatched
				continue
			}
			fresh = append(fresh, o)
		}
		e.orders = append(append([]domain.Order{}, fresh...), e.orders...)
	}
	e.mu.Unlock()

	e.metrics.ObservePoll(float64(time.Since(t0).Microseconds())/1000.0, len(fetched), len(fresh))
	e.logger.Info("poll completed",
		zap.Int("fetched", len(fetched)),
		zap.Int("new", len(fresh)),
		zap.Bool("initial", initial),
	)

	if initial {
		e.bus.Publish(Event{Kind: EventPendingOrdersLoaded, Orders: e.Orders()})
		return nil
	}

	if len(fresh) == 0 {
		return nil
	}
	e.bus.Publish(Event{Kind: EventNewOrdersFound, Orders: append([]domain.Order{}, fresh...)})

	if e.autoDispatch.Load() {
		var pending []domain.Order
		for _, o := range fresh {
			if !o.Dispatched {
				pending = append(pending, o)
			}
		}
		if len(pending) > 0 {
			e.startBatch(pending)
		}
	}
	return nil
}

func (e *Engine) pollFailed(err error) error {
	e.metrics.IncPollError()
	e.logger.Warn("poll failed", zap.Error(err))
	e.bus.Publish(Event{
		Kind:    EventStatusUpdate,
		State:   domain.StateError,
		Message: "sync failed: " + err.Error(),
	})
	return err
}

// SetAutoDispatch flips the live enable flag. Turning it on immediately
// batches every currently-known undispatched order; it does not wait for
// the next poll. Turning it off takes effect before the next batch item.
func (e *Engine) SetAutoDispatch(enabled bool) bool {
	prev := e.autoDispatch.Swap(enabled)
	if prev == enabled {
		return enabled
	}

	e.bus.Publish(Event{Kind: EventAutoDispatchToggled, Enabled: enabled})
	e.bus.Publish(Event{Kind: EventStatusUpdate, State: e.State(), Message: e.statusMessage()})
	e.logger.Info("auto dispatch toggled", zap.Bool("enabled", enabled))

	if enabled {
		var pending []domain.Order
		e.mu.Lock()
		running := e.state == domain.StateRunning
		for _, o := range e.orders {
			if !o.Dispatched {
				pending = append(pending, o)
			}
		}
		e.mu.Unlock()
		if running && len(pending) > 0 {
			e.startBatch(pending)
		}
	}
	return enabled
}

func (e *Engine) AutoDispatchEnabled() bool { return e.autoDispatch.Load() }

func (e *Engine) State() domain.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Orders returns a snapshot of the working set, newest-discovered-first.
func (e *Engine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Order{}, e.orders...)
}

func (e *Engine) statusMessage() string {
	if e.autoDispatch.Load() {
		return "order sync running (auto dispatch: on)"
	}
	return "order sync running (auto dispatch: off)"
}

func (e *Engine) indexLocked(id int64) int {
	for i := range e.orders {
		if e.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) markDispatchedLocked(id int64) {
	if i := e.indexLocked(id); i >= 0 {
		e.orders[i].Dispatched = true
	}
}

func exists(set map[int64]struct{}, id int64) bool {
	_, ok := set[id]
	return ok
}
