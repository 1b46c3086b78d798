package observability

import "sync"

type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		pollErrors           int
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObservePoll(durMs float64, fetched, added int) {
	m.push(struct {
		Kind           string
		Dur            float64
		Fetched, Added int
	}{"poll", durMs, fetched, added})
}

func (m *Inmem) ObserveDispatch(durMs float64, ok bool) {
	m.push(struct {
		Kind string
		Dur  float64
		OK   bool
	}{"dispatch", durMs, ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) IncPollError() {
	m.mu.Lock()
	m.totals.pollErrors++
	m.mu.Unlock()
}

func (m *Inmem) IncDetailCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}
func (m *Inmem) IncDetailCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}
