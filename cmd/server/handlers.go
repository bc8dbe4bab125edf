package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/pool"
	"github.com/xtding233/gacha-sim/internal/session"
)

type sessionResp struct {
	Session string `json:"session"`
	Banner  string `json:"banner"`
}

type drawResp struct {
	Session  string         `json:"session"`
	Items    []session.Item `json:"items,omitempty"`
	Counters gacha.Counters `json:"counters"`
}

type probResp struct {
	Banner      string  `json:"banner"`
	Tier        string  `json:"tier"`
	Count       int     `json:"count"`
	Prob        float64 `json:"prob"`
	BalanceProb float64 `json:"balance_prob,omitempty"`
}

type healthResp struct {
	Sessions int `json:"sessions"`
}

type errResp struct {
	Err string `json:"err"`
}

type server struct {
	store *session.Store
	pools pool.Pools // optional item names, keyed by banner kind
	names gacha.RandomSource
}

func newServer(store *session.Store, pools pool.Pools) *server {
	return &server{store: store, pools: pools, names: gacha.DefaultRNG()}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreate)
	mux.HandleFunc("DELETE /sessions", s.handleDelete)
	mux.HandleFunc("GET /draw", s.handleDraw)
	mux.HandleFunc("POST /want", s.handleWant)
	mux.HandleFunc("GET /prob", s.handleProb)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// checkPools validates every pool named after a banner against set.
// Pools with other names are ignored.
func checkPools(pools pool.Pools, set gacha.BannerSet) error {
	for _, name := range pools.Names() {
		kind, err := gacha.ParseBannerKind(name)
		if err != nil {
			continue
		}
		if err := pools[name].Validate(kind, set); err != nil {
			return err
		}
	}
	return nil
}

// applyBanners swaps in a reloaded banner config. A config the loaded pools
// cannot name is refused and the previous one stays active.
func (s *server) applyBanners(set gacha.BannerSet) error {
	if err := checkPools(s.pools, set); err != nil {
		return err
	}
	return s.store.SetBanners(set)
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, session.ErrInvalidCount), errors.Is(err, gacha.ErrBannerConfig):
		code = http.StatusBadRequest
	case errors.Is(err, session.ErrNoWant):
		code = http.StatusConflict
	default:
		logger.Error("request failed", "err", err)
	}
	writeJSON(w, code, errResp{Err: err.Error()})
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind, err := gacha.ParseBannerKind(r.URL.Query().Get("banner"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := s.store.Create(kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResp{Session: id, Banner: string(kind)})
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.URL.Query().Get("session")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDraw(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	n, ok, msg := parseInt(r, "n")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok {
		n = 1
	}
	outs, c, err := s.store.Draw(id, n)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResp{Session: id, Items: session.Items(outs, s.namer(id)), Counters: c})
}

// namer resolves names from the pool named after the session's banner.
func (s *server) namer(id string) func(gacha.Outcome) string {
	if len(s.pools) == 0 {
		return nil
	}
	info, err := s.store.Get(id)
	if err != nil {
		return nil
	}
	p, ok := s.pools[string(info.Kind)]
	if !ok {
		return nil
	}
	return func(o gacha.Outcome) string { return p.Name(o, s.names) }
}

func (s *server) handleWant(w http.ResponseWriter, r *http.Request) {
	slot, ok, msg := parseInt(r, "slot")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok {
		slot = -1
	}
	id := r.URL.Query().Get("session")
	c, err := s.store.SetWant(id, slot)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResp{Session: id, Counters: c})
}

// curve lookup: /prob?banner=weapon&tier=rare&count=70
func (s *server) handleProb(w http.ResponseWriter, r *http.Request) {
	kind, err := gacha.ParseBannerKind(r.URL.Query().Get("banner"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	count, ok, msg := parseInt(r, "count")
	if !ok || count < 1 {
		if msg == "" {
			msg = "missing/invalid param count"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	set := s.store.Banners()
	var rare, near gacha.TierCurve
	switch kind {
	case gacha.BannerStandard:
		rare, near = set.Standard.Rare, set.Standard.NearRare
	case gacha.BannerCharacter:
		rare, near = set.Character.Rare, set.Character.NearRare
	case gacha.BannerWeapon:
		rare, near = set.Weapon.Rare, set.Weapon.NearRare
	}

	tier := r.URL.Query().Get("tier")
	var curve gacha.TierCurve
	switch tier {
	case "", "rare":
		tier, curve = "rare", rare
	case "near_rare":
		curve = near
	default:
		http.Error(w, "tier must be rare or near_rare", http.StatusBadRequest)
		return
	}

	resp := probResp{Banner: string(kind), Tier: tier, Count: count, Prob: curve.Prob(count)}
	if curve.BalanceThreshold > 0 {
		resp.BalanceProb = curve.BalanceProb(count)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{Sessions: s.store.Len()})
}
