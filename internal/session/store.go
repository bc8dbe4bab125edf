// Package session keeps live banners in memory for the network servers.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// MaxDrawsPerCall bounds one Draw request.
const MaxDrawsPerCall = 1000

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidCount = errors.New("invalid draw count")
	ErrNoWant       = errors.New("banner does not support want")
)

type session struct {
	mu      sync.Mutex
	kind    gacha.BannerKind
	banner  gacha.Drawer
	draws   int
	created time.Time
}

// Info describes a session without exposing its banner.
type Info struct {
	ID       string           `json:"id"`
	Kind     gacha.BannerKind `json:"banner"`
	Draws    int              `json:"draws"`
	Created  time.Time        `json:"created"`
	Counters gacha.Counters   `json:"counters"`
}

// Store owns every banner it creates; callers only see snapshots.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	banners  gacha.BannerSet
	newRNG   func() gacha.RandomSource
}

type Option func(*Store)

// WithRNG replaces the per-session random source factory.
func WithRNG(f func() gacha.RandomSource) Option {
	return func(s *Store) { s.newRNG = f }
}

func NewStore(banners gacha.BannerSet, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		banners:  banners,
		newRNG:   gacha.DefaultRNG,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetBanners swaps the config used by sessions created from now on.
// Live sessions keep the config they were built with.
func (s *Store) SetBanners(banners gacha.BannerSet) error {
	if err := banners.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.banners = banners
	s.mu.Unlock()
	return nil
}

// Banners returns the config new sessions are built with.
func (s *Store) Banners() gacha.BannerSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.banners
}

// Create starts a fresh banner and returns its id.
func (s *Store) Create(kind gacha.BannerKind) (string, error) {
	s.mu.RLock()
	set := s.banners
	s.mu.RUnlock()

	b, err := gacha.NewBanner(kind, set, s.newRNG())
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{kind: kind, banner: b, created: time.Now()}
	s.mu.Unlock()
	return id, nil
}

func (s *Store) get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Draw performs n draws on the session's banner in order.
func (s *Store) Draw(id string, n int) ([]gacha.Outcome, gacha.Counters, error) {
	if n < 1 || n > MaxDrawsPerCall {
		return nil, gacha.Counters{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidCount, n, MaxDrawsPerCall)
	}
	sess, err := s.get(id)
	if err != nil {
		return nil, gacha.Counters{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]gacha.Outcome, n)
	for i := range out {
		out[i] = sess.banner.Draw()
	}
	sess.draws += n
	return out, sess.banner.Counters(), nil
}

// SetWant chases slot on a weapon session; a negative slot stops chasing.
func (s *Store) SetWant(id string, slot int) (gacha.Counters, error) {
	sess, err := s.get(id)
	if err != nil {
		return gacha.Counters{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	w, ok := sess.banner.(gacha.WantSetter)
	if !ok {
		return gacha.Counters{}, fmt.Errorf("%w: %s", ErrNoWant, sess.kind)
	}
	if slot < 0 {
		w.ClearWant()
	} else if err := w.SetWant(slot); err != nil {
		return gacha.Counters{}, err
	}
	return sess.banner.Counters(), nil
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (Info, error) {
	sess, err := s.get(id)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Info{
		ID:       id,
		Kind:     sess.kind,
		Draws:    sess.draws,
		Created:  sess.created,
		Counters: sess.banner.Counters(),
	}, nil
}

// Delete drops the session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
