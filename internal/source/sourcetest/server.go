// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sourcetest runs a fake upstream API for tests. It serves the
// collection, record, and species endpoints from an in-memory table and
// lets a test inject failures, latency, and gates per record id.
package sourcetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Record is one entry served by the fake API.
type Record struct {
	ID         int
	Name       string
	Types      []string
	Sprite     string // empty → front_default: null
	Height     int
	Weight     int
	Stats      map[string]int
	Abilities  []string
	GenderRate int
	Flavor     map[string]string // language → flavour text
	Genus      map[string]string // language → genus
}

// Server is a fake upstream API.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	order       []int
	records     map[int]Record
	failRecord  map[int]int // id → status code
	failSpecies map[int]int
	failList    int
	delays      map[int]time.Duration
	gates       map[int]chan struct{}
	hits        map[string]int
}

// NewServer starts a fake API serving records in the given order and
// registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, records ...Record) *Server {
	t.Helper()
	s := &Server{
		records:     make(map[int]Record),
		failRecord:  make(map[int]int),
		failSpecies: make(map[int]int),
		delays:      make(map[int]time.Duration),
		gates:       make(map[int]chan struct{}),
		hits:        make(map[string]int),
	}
	for _, r := range records {
		s.order = append(s.order, r.ID)
		s.records[r.ID] = r
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", s.handleList)
	mux.HandleFunc("/pokemon/", s.handleRecord)
	mux.HandleFunc("/pokemon-species/", s.handleSpecies)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(func() {
		s.ReleaseAll()
		s.Server.Close()
	})
	return s
}

// BaseURL is the API root to configure clients with.
func (s *Server) BaseURL() string { return s.URL }

// RecordURL is the detail URL for id, with the trailing slash the real
// service uses in list results.
func (s *Server) RecordURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", s.URL, id)
}

// FailRecord makes the detail endpoint for id answer with status.
func (s *Server) FailRecord(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRecord[id] = status
}

// FailSpecies makes the species endpoint for id answer with status.
func (s *Server) FailSpecies(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSpecies[id] = status
}

// FailList makes the collection endpoint answer with status. Zero restores it.
func (s *Server) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = status
}

// Delay makes the detail endpoint for id sleep before answering.
func (s *Server) Delay(id int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[id] = d
}

// Gate holds detail requests for id until Release(id) is called.
func (s *Server) Gate(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gates[id]; !ok {
		s.gates[id] = make(chan struct{})
	}
}

// Release opens the gate for id.
func (s *Server) Release(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.gates[id]; ok {
		close(g)
		delete(s.gates, id)
	}
}

// ReleaseAll opens every gate.
func (s *Server) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.gates {
		close(g)
		delete(s.gates, id)
	}
}

// Hits returns how many requests reached path (without query string).
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) count(path string) {
	s.mu.Lock()
	s.hits[path]++
	s.mu.Unlock()
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.count(r.URL.Path)

	s.mu.Lock()
	failList := s.failList
	order := append([]int(nil), s.order...)
	s.mu.Unlock()

	if failList != 0 {
		http.Error(w, "list unavailable", failList)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	if offset > len(order) {
		offset = len(order)
	}
	end := offset + limit
	if end > len(order) {
		end = len(order)
	}

	type ref struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]ref, 0, end-offset)
	s.mu.Lock()
	for _, id := range order[offset:end] {
		results = append(results, ref{Name: s.records[id].Name, URL: s.RecordURL(id)})
	}
	s.mu.Unlock()

	var next, prev *string
	if end < len(order) {
		u := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", s.URL, end, limit)
		next = &u
	}
	if offset > 0 {
		p := offset - limit
		if p < 0 {
			p = 0
		}
		u := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", s.URL, p, limit)
		prev = &u
	}

	writeJSON(w, map[string]any{
		"count":    len(order),
		"next":     next,
		"previous": prev,
		"results":  results,
	})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pokemon/"), "/")
	s.count("/pokemon/" + key)

	rec, ok := s.lookup(key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	status := s.failRecord[rec.ID]
	delay := s.delays[rec.ID]
	gate := s.gates[rec.ID]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, "record unavailable", status)
		return
	}

	types := make([]map[string]any, 0, len(rec.Types))
	for i, t := range rec.Types {
		types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": t}})
	}
	stats := make([]map[string]any, 0, len(rec.Stats))
	for _, name := range statOrder {
		if v, ok := rec.Stats[name]; ok {
			stats = append(stats, map[string]any{"base_stat": v, "stat": map[string]string{"name": name}})
		}
	}
	abilities := make([]map[string]any, 0, len(rec.Abilities))
	for _, a := range rec.Abilities {
		abilities = append(abilities, map[string]any{"ability": map[string]string{"name": a}, "is_hidden": false})
	}
	var sprite *string
	if rec.Sprite != "" {
		sprite = &rec.Sprite
	}

	writeJSON(w, map[string]any{
		"id":              rec.ID,
		"name":            rec.Name,
		"height":          rec.Height,
		"weight":          rec.Weight,
		"base_experience": 64,
		"types":           types,
		"sprites":         map[string]any{"front_default": sprite},
		"stats":           stats,
		"abilities":       abilities,
		"species": map[string]string{
			"name": rec.Name,
			"url":  fmt.Sprintf("%s/pokemon-species/%d/", s.URL, rec.ID),
		},
	})
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pokemon-species/"), "/")
	s.count("/pokemon-species/" + key)

	rec, ok := s.lookup(key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	status := s.failSpecies[rec.ID]
	s.mu.Unlock()
	if status != 0 {
		http.Error(w, "species unavailable", status)
		return
	}

	flavors := []map[string]any{}
	for _, lang := range langOrder(rec.Flavor) {
		flavors = append(flavors, map[string]any{
			"flavor_text": rec.Flavor[lang],
			"language":    map[string]string{"name": lang},
		})
	}
	genera := []map[string]any{}
	for _, lang := range langOrder(rec.Genus) {
		genera = append(genera, map[string]any{
			"genus":    rec.Genus[lang],
			"language": map[string]string{"name": lang},
		})
	}

	writeJSON(w, map[string]any{
		"flavor_text_entries": flavors,
		"genera":              genera,
		"gender_rate":         rec.GenderRate,
	})
}

func (s *Server) lookup(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, err := strconv.Atoi(key); err == nil {
		rec, ok := s.records[id]
		return rec, ok
	}
	for _, rec := range s.records {
		if rec.Name == key {
			return rec, true
		}
	}
	return Record{}, false
}

var statOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// langOrder lists non-English languages first so tests exercise the
// "first en entry" lookup rather than index 0.
func langOrder(m map[string]string) []string {
	var out []string
	for _, l := range []string{"ja", "fr", "de", "en"} {
		if _, ok := m[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Starters returns a small fixed catalogue useful across tests.
func Starters() []Record {
	return []Record{
		{
			ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"},
			Sprite: "https://img.example/1.png", Height: 7, Weight: 69,
			Stats:      map[string]int{"hp": 45, "attack": 49, "defense": 49, "special-attack": 65, "special-defense": 65, "speed": 45},
			Abilities:  []string{"overgrow", "chlorophyll"},
			GenderRate: 1,
			Flavor: map[string]string{
				"ja": "うまれたときから",
				"en": "A strange seed was\nplanted on its\fback at birth. The POKéMON grows.",
			},
			Genus: map[string]string{"ja": "たねポケモン", "en": "Seed Pokémon"},
		},
		{
			ID: 2, Name: "ivysaur", Types: []string{"grass", "poison"},
			Sprite: "https://img.example/2.png", Height: 10, Weight: 130,
			Stats:      map[string]int{"hp": 60, "attack": 62},
			Abilities:  []string{"overgrow"},
			GenderRate: 1,
			Flavor:     map[string]string{"en": "When the bulb on its back grows large, it appears to lose the ability to stand on its hind legs."},
			Genus:      map[string]string{"en": "Seed Pokémon"},
		},
		{
			ID: 4, Name: "charmander", Types: []string{"fire"},
			Sprite: "https://img.example/4.png", Height: 6, Weight: 85,
			Stats:      map[string]int{"hp": 39, "speed": 65},
			Abilities:  []string{"blaze"},
			GenderRate: 1,
			Flavor:     map[string]string{"en": "Obviously prefers hot places. POKEMON say it rains."},
			Genus:      map[string]string{"en": "Lizard Pokémon"},
		},
		{
			ID: 81, Name: "magnemite", Types: []string{"electric", "steel"},
			Height: 3, Weight: 60,
			Stats:      map[string]int{"hp": 25, "special-attack": 95},
			Abilities:  []string{"magnet-pull"},
			GenderRate: -1,
			Flavor:     map[string]string{"fr": "Il utilise des ondes."},
			Genus:      map[string]string{"fr": "Pokémon Magnétique"},
		},
	}
}
