package engine

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/TemirB/order-print-agent/internal/domain"

	"go.uber.org/zap"
)

// startBatch hands a set of orders to the sequential dispatch walk on its
// own goroutine so neither the poll path nor the toggle handler blocks on
// the output device.
func (e *Engine) startBatch(orders []domain.Order) {
	batch := append([]domain.Order{}, orders...)

	// The state check and the Add stay under mu so Stop cannot slip its
	// wg.Wait between them.
	e.mu.Lock()
	ctx := e.runCtx
	if e.state != domain.StateRunning || ctx == nil || ctx.Err() != nil {
		e.mu.Unlock()
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		e.runBatch(ctx, batch)
	}()
}

// runBatch walks the batch oldest-dateAdded-first. The live enable flag is
// re-checked before every item, so toggling off takes effect within one
// item. One order's failure never aborts the rest of the walk.
func (e *Engine) runBatch(ctx context.Context, orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DateAdded < orders[j].DateAdded
	})

	for i, o := range orders {
		if ctx.Err() != nil {
			return
		}
		if !e.autoDispatch.Load() {
			e.logger.Info("auto dispatch disabled, stopping batch",
				zap.Int("remaining", len(orders)-i),
			)
			return
		}

		// A batch started by a re-toggle can overlap one still draining;
		// the live flag is the dedup for that case.
		e.mu.Lock()
		done := false
		if idx := e.indexLocked(o.ID); idx >= 0 {
			done = e.orders[idx].Dispatched
		}
		e.mu.Unlock()
		if done {
			continue
		}

		e.dispatchOne(ctx, o)

		// Pace the output device between jobs.
		if !sleepCtx(ctx, e.opts.DispatchDelay) {
			return
		}
	}
}

func (e *Engine) dispatchOne(ctx context.Context, o domain.Order) {
	e.bus.Publish(Event{Kind: EventDispatching, Order: &o})
	t0 := time.Now()

	detail, err := e.source.Detail(ctx, o.ID)
	if err == nil {
		err = e.deliver(ctx, detail)
	}
	success := err == nil

	rec := recordFromOrder(o, outcomeOf(success))
	if uerr := e.ledger.Upsert(ctx, &rec); uerr != nil {
		// The attempt already reached the device; all we can do is log.
		// The next poll re-reads the ledger, so the flag stays honest.
		e.logger.Error("ledger upsert failed",
			zap.Int64("order_id", o.ID),
			zap.Error(uerr),
		)
	} else {
		// A record now exists whatever the outcome, so the order counts
		// as seen: a failed attempt waits for a manual reprint and is
		// never queued again by a poll or a re-toggle.
		e.mu.Lock()
		e.markDispatchedLocked(o.ID)
		e.mu.Unlock()
		o.Dispatched = true
	}

	durMs := float64(time.Since(t0).Microseconds()) / 1000.0
	e.metrics.ObserveDispatch(durMs, success)
	if success {
		e.logger.Info("order dispatched",
			zap.Int64("order_id", o.ID),
			zap.Float64("dur_ms", durMs),
		)
	} else {
		e.logger.Warn("order dispatch failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
	}
	e.bus.Publish(Event{Kind: EventDispatched, Order: &o, Success: success})
}

// deliver performs the bounded device call. A timed-out attempt is a plain
// failure; the device context is released by the deferred cancel.
func (e *Engine) deliver(ctx context.Context, detail *domain.OrderDetail) error {
	e.printMu.Lock()
	defer e.printMu.Unlock()

	dctx, cancel := context.WithTimeout(ctx, e.opts.DispatchTimeout)
	defer cancel()

	if err := e.dispatcher.Dispatch(dctx, detail, e.opts.Dispatch); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrDispatchTimeout
		}
		return err
	}
	return nil
}

// RunSingle is the operator reprint path. It bypasses the enable flag and
// the ledger dedup entirely: the detail is always fetched and the device is
// always called. A successful reprint overwrites the ledger record.
func (e *Engine) RunSingle(ctx context.Context, id int64) error {
	o := domain.Order{ID: id}
	e.mu.Lock()
	if i := e.indexLocked(id); i >= 0 {
		o = e.orders[i]
	}
	e.mu.Unlock()

	e.bus.Publish(Event{Kind: EventDispatching, Order: &o})

	detail, err := e.source.Detail(ctx, id)
	if err == nil {
		err = e.deliver(ctx, detail)
	}
	if err != nil {
		e.logger.Warn("reprint failed", zap.Int64("order_id", id), zap.Error(err))
		e.bus.Publish(Event{Kind: EventDispatched, Order: &o, Success: false})
		return err
	}

	rec := recordFromDetail(detail)
	if uerr := e.ledger.Upsert(ctx, &rec); uerr != nil {
		e.logger.Error("ledger upsert failed",
			zap.Int64("order_id", id),
			zap.Error(uerr),
		)
	}

	e.mu.Lock()
	e.markDispatchedLocked(id)
	e.mu.Unlock()
	o.Dispatched = true

	e.logger.Info("order reprinted", zap.Int64("order_id", id))
	e.bus.Publish(Event{Kind: EventDispatched, Order: &o, Success: true})
	return nil
}

func outcomeOf(success bool) domain.Outcome {
	if success {
		return domain.OutcomeSuccess
	}
	return domain.OutcomeFailed
}

func recordFromOrder(o domain.Order, outcome domain.Outcome) domain.DispatchRecord {
	return domain.DispatchRecord{
		OrderID:        o.ID,
		DispatchedAt:   time.Now().Unix(),
		OrderDateAdded: o.DateAdded,
		ShipDate:       o.ShipDate,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		TotalPrice:     o.TotalPrice,
		Outcome:        outcome,
	}
}

func recordFromDetail(d *domain.OrderDetail) domain.DispatchRecord {
	return domain.DispatchRecord{
		OrderID:        d.OrderID,
		DispatchedAt:   time.Now().Unix(),
		OrderDateAdded: d.DateAdded,
		ShipDate:       d.ShipDate,
		CustomerName:   d.Customer.Name,
		CustomerPhone:  d.Customer.Phone,
		TotalPrice:     d.GrandTotal,
		Outcome:        domain.OutcomeSuccess,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
