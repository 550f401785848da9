package querycache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the current value of one identity from the remote service.
type Fetcher func(ctx context.Context) (interface{}, error)

// CommitHook is called with every fetched value the store accepts. It is not
// called for failed or superseded fetches.
type CommitHook func(ctx context.Context, id QueryIdentity, value interface{})

const (
	DefaultListStaleTime = 5 * time.Minute
	DefaultGCTime        = 5 * time.Minute
)

// Options configures a Store. Zero stale times mean "stale as soon as written".
type Options struct {
	StaleTime map[Kind]time.Duration
	GCTime    time.Duration
	Clock     Clock
}

// DefaultOptions returns list 5m, detail 0, comments 0 and GC after 5m.
func DefaultOptions() Options {
	return Options{
		StaleTime: map[Kind]time.Duration{
			KindList:     DefaultListStaleTime,
			KindDetail:   0,
			KindComments: 0,
		},
		GCTime: DefaultGCTime,
	}
}

type entry struct {
	id    QueryIdentity
	key   string
	kind  string
	value interface{}

	hasValue  bool
	status    Status
	err       error
	updatedAt time.Time
	stale     bool

	// Logical start stamps. valueSeq is the stamp of whatever produced the
	// current value, invalidatedSeq the stamp of the last invalidation.
	valueSeq       uint64
	invalidatedSeq uint64

	inFlight   bool
	flightKey  string
	flightFn   func() (interface{}, error)
	fetcher    Fetcher
	fetchCtx   context.Context
	lastActive time.Time

	subs   map[uint64]func(Snapshot)
	nextID uint64
}

// Store is safe for concurrent use. Entry state is guarded by one mutex that
// is never held across a fetch or a subscriber callback.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
	group   singleflight.Group
	hooks   []CommitHook

	staleTime map[Kind]time.Duration
	gcTime    time.Duration
	clock     Clock
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	stale := make(map[Kind]time.Duration, len(opts.StaleTime))
	for k, v := range opts.StaleTime {
		stale[k] = v
	}
	return &Store{
		entries:   make(map[string]*entry),
		staleTime: stale,
		gcTime:    opts.GCTime,
		clock:     opts.Clock,
	}
}

type fetchResult struct {
	snap Snapshot
	err  error
}

// Handle is the awaitable result of EnsureFresh.
type Handle struct {
	ch   <-chan singleflight.Result
	snap Snapshot
}

// Wait blocks until the fetch settles or ctx is done. Cancelling ctx stops
// the wait only; the shared fetch keeps running for the other waiters.
// On failure the returned snapshot still carries any previous value.
func (h *Handle) Wait(ctx context.Context) (Snapshot, error) {
	if h.ch == nil {
		return h.snap, nil
	}
	select {
	case <-ctx.Done():
		return h.snap, ctx.Err()
	case res := <-h.ch:
		r := res.Val.(fetchResult)
		return r.snap, r.err
	}
}

// Read returns the current snapshot of id without fetching.
func (s *Store) Read(id QueryIdentity) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id.Key()]
	if !ok {
		return Snapshot{Identity: id, Status: StatusIdle, Stale: true}
	}
	return s.snapshotLocked(e)
}

// EnsureFresh returns immediately resolved when the cached value is fresh.
// Otherwise it joins the fetch already in flight for id or starts one with
// fetcher. The fetcher is remembered for refetches after invalidation.
func (s *Store) EnsureFresh(ctx context.Context, id QueryIdentity, fetcher Fetcher) *Handle {
	s.mu.Lock()
	e := s.entryLocked(id)
	e.lastActive = s.clock.Now()
	if fetcher != nil {
		e.fetcher = fetcher
		e.fetchCtx = context.WithoutCancel(ctx)
	}

	if s.freshLocked(e) {
		snap := s.snapshotLocked(e)
		s.mu.Unlock()
		metrics.IncCacheHit(e.kind)
		return &Handle{snap: snap}
	}
	metrics.IncCacheMiss(e.kind)

	if e.inFlight {
		ch := s.group.DoChan(e.flightKey, e.flightFn)
		snap := s.snapshotLocked(e)
		s.mu.Unlock()
		metrics.IncCacheCoalesced(e.kind)
		return &Handle{ch: ch, snap: snap}
	}

	if e.fetcher == nil {
		snap := s.snapshotLocked(e)
		s.mu.Unlock()
		return &Handle{snap: snap}
	}

	ch := s.startFetchLocked(e)
	snap := s.snapshotLocked(e)
	notify := s.listenersLocked(e)
	s.mu.Unlock()

	notify(snap)
	return &Handle{ch: ch, snap: snap}
}

// startFetchLocked registers a new in-flight fetch for e. The singleflight
// call runs on its own goroutine, so it is safe to start under s.mu.
func (s *Store) startFetchLocked(e *entry) <-chan singleflight.Result {
	seq := s.nextSeqLocked()
	fetcher, ctx := e.fetcher, e.fetchCtx
	if ctx == nil {
		ctx = context.Background()
	}
	e.inFlight = true
	e.flightKey = e.key + "#" + strconv.FormatUint(seq, 10)
	if !e.hasValue {
		e.status = StatusLoading
	}
	e.flightFn = func() (interface{}, error) {
		start := s.clock.Now()
		value, err := fetcher(ctx)
		metrics.ObserveFetch(e.kind, s.clock.Now().Sub(start).Seconds(), err)
		res := s.complete(e, seq, value, err)
		if res.err == nil {
			s.runHooks(ctx, e.id, value)
		}
		return res, nil
	}
	return s.group.DoChan(e.flightKey, e.flightFn)
}

// OnCommit registers fn to run after each accepted fetch, before waiters of
// that fetch are released.
func (s *Store) OnCommit(fn CommitHook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

func (s *Store) runHooks(ctx context.Context, id QueryIdentity, value interface{}) {
	s.mu.Lock()
	hooks := append([]CommitHook(nil), s.hooks...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx, id, value)
	}
}

// complete applies a fetch outcome unless it has been superseded: started
// before the last invalidation, or older than the current value.
func (s *Store) complete(e *entry, seq uint64, value interface{}, err error) fetchResult {
	s.mu.Lock()
	current, ok := s.entries[e.key]
	if !ok || current != e {
		s.mu.Unlock()
		metrics.IncCacheDiscarded(e.kind)
		return fetchResult{snap: Snapshot{Identity: e.id, Status: StatusIdle, Stale: true}, err: ErrSuperseded}
	}

	if e.flightKey == e.key+"#"+strconv.FormatUint(seq, 10) {
		e.inFlight = false
		e.flightFn = nil
	}

	if seq < e.invalidatedSeq || seq < e.valueSeq {
		snap := s.snapshotLocked(e)
		notify := s.listenersLocked(e)
		s.mu.Unlock()
		metrics.IncCacheDiscarded(e.kind)
		notify(snap)
		return fetchResult{snap: snap, err: ErrSuperseded}
	}

	now := s.clock.Now()
	if err != nil {
		e.err = err
		e.status = StatusError
	} else {
		e.value = value
		e.hasValue = true
		e.err = nil
		e.status = StatusSuccess
		e.updatedAt = now
		e.stale = false
		e.valueSeq = seq
	}
	e.lastActive = now
	snap := s.snapshotLocked(e)
	notify := s.listenersLocked(e)
	s.mu.Unlock()

	notify(snap)
	return fetchResult{snap: snap, err: err}
}

// Write stores a server-confirmed value for id as fresh. Fetches started
// before the write can no longer overwrite it.
func (s *Store) Write(id QueryIdentity, value interface{}) {
	s.mu.Lock()
	e := s.entryLocked(id)
	now := s.clock.Now()
	e.value = value
	e.hasValue = true
	e.err = nil
	e.status = StatusSuccess
	e.updatedAt = now
	e.stale = false
	e.valueSeq = s.nextSeqLocked()
	e.lastActive = now
	snap := s.snapshotLocked(e)
	notify := s.listenersLocked(e)
	s.mu.Unlock()

	notify(snap)
}

// Seed hydrates id with a value of unknown age, e.g. from the snapshot
// mirror. The value is served immediately but is stale, so the next
// EnsureFresh refetches. Entries that already hold a value are left alone.
func (s *Store) Seed(id QueryIdentity, value interface{}) bool {
	s.mu.Lock()
	e := s.entryLocked(id)
	if e.hasValue {
		s.mu.Unlock()
		return false
	}
	e.value = value
	e.hasValue = true
	e.status = StatusSuccess
	e.stale = true
	e.lastActive = s.clock.Now()
	snap := s.snapshotLocked(e)
	notify := s.listenersLocked(e)
	s.mu.Unlock()

	notify(snap)
	return true
}

// Update replaces the cached value of id with fn(value) when a value
// exists. fn must return a new value rather than mutate its argument.
// Freshness is left as it was.
func (s *Store) Update(id QueryIdentity, fn func(interface{}) interface{}) bool {
	s.mu.Lock()
	e, ok := s.entries[id.Key()]
	if !ok || !e.hasValue {
		s.mu.Unlock()
		return false
	}
	e.value = fn(e.value)
	e.valueSeq = s.nextSeqLocked()
	snap := s.snapshotLocked(e)
	notify := s.listenersLocked(e)
	s.mu.Unlock()

	notify(snap)
	return true
}

// Invalidate marks every entry matching pred stale and returns the matched
// identities. In-flight fetches of those entries are superseded, and
// entries with subscribers are refetched right away.
func (s *Store) Invalidate(pred Predicate) []QueryIdentity {
	type pending struct {
		snap   Snapshot
		notify func(Snapshot)
	}
	var (
		matched []QueryIdentity
		out     []pending
	)

	s.mu.Lock()
	for _, e := range s.entries {
		if !pred(e.id) {
			continue
		}
		matched = append(matched, e.id)
		e.stale = true
		e.invalidatedSeq = s.nextSeqLocked()
		e.inFlight = false
		e.flightFn = nil
		metrics.IncCacheInvalidated(e.kind)

		if len(e.subs) > 0 && e.fetcher != nil {
			s.startFetchLocked(e)
		}
		out = append(out, pending{snap: s.snapshotLocked(e), notify: s.listenersLocked(e)})
	}
	s.mu.Unlock()

	for _, p := range out {
		p.notify(p.snap)
	}
	return matched
}

// Subscribe registers fn for every change of id. The returned function
// removes the subscription; it is safe to call more than once.
func (s *Store) Subscribe(id QueryIdentity, fn func(Snapshot)) func() {
	s.mu.Lock()
	e := s.entryLocked(id)
	e.nextID++
	subID := e.nextID
	e.subs[subID] = fn
	e.lastActive = s.clock.Now()
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(e.subs, subID)
			e.lastActive = s.clock.Now()
		})
	}
}

// Collect removes entries that have had no subscribers and no fetch in
// flight for at least the GC time. It returns how many were removed.
func (s *Store) Collect() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	removed := 0
	for key, e := range s.entries {
		if len(e.subs) > 0 || e.inFlight {
			continue
		}
		if now.Sub(e.lastActive) >= s.gcTime {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		metrics.AddCacheEvicted(removed)
	}
	return removed
}

// Run calls Collect periodically until ctx is done.
func (s *Store) Run(ctx context.Context) {
	interval := s.gcTime / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Collect()
		}
	}
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) entryLocked(id QueryIdentity) *entry {
	key := id.Key()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{
			id:         id,
			key:        key,
			kind:       string(id.Kind),
			status:     StatusIdle,
			stale:      true,
			subs:       make(map[uint64]func(Snapshot)),
			lastActive: s.clock.Now(),
		}
		s.entries[key] = e
	}
	return e
}

func (s *Store) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

func (s *Store) freshLocked(e *entry) bool {
	if !e.hasValue || e.stale {
		return false
	}
	return s.clock.Now().Sub(e.updatedAt) < s.staleTime[e.id.Kind]
}

func (s *Store) snapshotLocked(e *entry) Snapshot {
	return Snapshot{
		Identity:  e.id,
		Value:     e.value,
		HasValue:  e.hasValue,
		Status:    e.status,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
		Stale:     !s.freshLocked(e),
		Fetching:  e.inFlight,
	}
}

// listenersLocked copies the subscriber set so it can be called after the
// lock is released.
func (s *Store) listenersLocked(e *entry) func(Snapshot) {
	if len(e.subs) == 0 {
		return func(Snapshot) {}
	}
	fns := make([]func(Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	return func(snap Snapshot) {
		for _, fn := range fns {
			fn(snap)
		}
	}
}
