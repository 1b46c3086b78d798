package observability

type Metrics interface {
	ObservePoll(durMs float64, fetched, added int)
	ObserveDispatch(durMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncPollError()
	IncDetailCacheHit()
	IncDetailCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObservePoll(float64, int, int)            {}
func (Noop) ObserveDispatch(float64, bool)            {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncPollError()                            {}
func (Noop) IncDetailCacheHit()                       {}
func (Noop) IncDetailCacheMiss()                      {}
