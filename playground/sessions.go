package playground

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"

	"github.com/beacodeart/glox/lox"
)

var errSessionLimit = errors.New("session store is full")

// session keeps one interpreter alive between requests. Runs against the
// same session are serialized.
type session struct {
	id     string
	mu     sync.Mutex
	out    *bytes.Buffer
	runner *lox.Runner
}

func (s *session) run(source string) runResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Reset()
	result := s.runner.Run(source)
	s.runner.ResetError()
	return newRunResponse(s.out.String(), result)
}

type sessionStore struct {
	cache *ristretto.Cache
	ttl   time.Duration
	cfg   lox.Config
}

func newSessionStore(maxSessions int, ttl time.Duration, cfg lox.Config) (*sessionStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        int64(maxSessions * 10),
		MaxCost:            int64(maxSessions),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &sessionStore{cache: cache, ttl: ttl, cfg: cfg}, nil
}

func (st *sessionStore) create() (*session, error) {
	out := new(bytes.Buffer)
	cfg := st.cfg
	cfg.Stdout = out
	s := &session{
		id:     uuid.NewString(),
		out:    out,
		runner: lox.NewRunner(cfg),
	}
	if !st.cache.SetWithTTL(s.id, s, 1, st.ttl) {
		return nil, errSessionLimit
	}
	st.cache.Wait()
	return s, nil
}

// get refreshes the session's TTL on every hit.
func (st *sessionStore) get(id string) (*session, bool) {
	value, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := value.(*session)
	st.cache.SetWithTTL(id, s, 1, st.ttl)
	return s, true
}

func (st *sessionStore) delete(id string) bool {
	if _, ok := st.cache.Get(id); !ok {
		return false
	}
	st.cache.Del(id)
	return true
}

func (st *sessionStore) close() {
	st.cache.Close()
}
