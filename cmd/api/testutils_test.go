package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/Ahmed-Abdel-karim/cinema/internal/config"
	"github.com/Ahmed-Abdel-karim/cinema/internal/data"
	"github.com/Ahmed-Abdel-karim/cinema/internal/jsonlog"
)

// table is an in-memory stand-in for one SQL table keyed by a generated id.
type table[T any] struct {
	mu   sync.Mutex
	rows map[int64]T
	next int64
	err  error
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (tb *table[T]) insert(build func(id int64) T) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.err != nil {
		return tb.err
	}
	tb.next++
	tb.rows[tb.next] = build(tb.next)
	return nil
}

func (tb *table[T]) get(id int64) (T, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var zero T
	if tb.err != nil {
		return zero, tb.err
	}
	rec, ok := tb.rows[id]
	if !ok {
		return zero, data.ErrRecordNotFound
	}
	return rec, nil
}

func (tb *table[T]) update(id int64, apply func(rec *T)) (T, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var zero T
	if tb.err != nil {
		return zero, tb.err
	}
	rec, ok := tb.rows[id]
	if !ok {
		return zero, data.ErrRecordNotFound
	}
	apply(&rec)
	tb.rows[id] = rec
	return rec, nil
}

func (tb *table[T]) delete(id int64) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.err != nil {
		return tb.err
	}
	if _, ok := tb.rows[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(tb.rows, id)
	return nil
}

func (tb *table[T]) all(keep func(T) bool) ([]T, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.err != nil {
		return nil, tb.err
	}
	ids := make([]int64, 0, len(tb.rows))
	for id := range tb.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []T{}
	for _, id := range ids {
		if keep(tb.rows[id]) {
			out = append(out, tb.rows[id])
		}
	}
	return out, nil
}

func (tb *table[T]) count() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.rows)
}

type fakeMovies struct{ *table[data.Movie] }

func (f fakeMovies) Insert(_ context.Context, movie *data.Movie) error {
	return f.insert(func(id int64) data.Movie {
		movie.ID = id
		return *movie
	})
}

func (f fakeMovies) Get(_ context.Context, id int64) (*data.Movie, error) {
	m, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (f fakeMovies) Update(_ context.Context, id int64, p data.MoviePatch) (*data.Movie, error) {
	m, err := f.update(id, func(m *data.Movie) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.Description != nil {
			m.Description = *p.Description
		}
		if p.Trailer != nil {
			m.Trailer = *p.Trailer
		}
		if p.Year != nil {
			m.Year = *p.Year
		}
		if p.Rating != nil {
			m.Rating = *p.Rating
		}
		if p.DirectorID != nil {
			m.DirectorID = *p.DirectorID
		}
		if p.GenreID != nil {
			m.GenreID = *p.GenreID
		}
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (f fakeMovies) Delete(_ context.Context, id int64) error {
	return f.delete(id)
}

func (f fakeMovies) GetAll(_ context.Context, filters data.MovieFilters) ([]data.Movie, error) {
	return f.all(func(m data.Movie) bool {
		return (filters.DirectorID == 0 || m.DirectorID == filters.DirectorID) &&
			(filters.GenreID == 0 || m.GenreID == filters.GenreID)
	})
}

type fakeDirectors struct{ *table[data.Director] }

func (f fakeDirectors) Insert(_ context.Context, d *data.Director) error {
	return f.insert(func(id int64) data.Director {
		d.ID = id
		return *d
	})
}

func (f fakeDirectors) Get(_ context.Context, id int64) (*data.Director, error) {
	d, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (f fakeDirectors) Update(_ context.Context, id int64, p data.DirectorPatch) (*data.Director, error) {
	d, err := f.update(id, func(d *data.Director) {
		if p.Name != nil {
			d.Name = *p.Name
		}
		if p.Description != nil {
			d.Description = *p.Description
		}
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (f fakeDirectors) Delete(_ context.Context, id int64) error {
	return f.delete(id)
}

func (f fakeDirectors) GetAll(_ context.Context) ([]data.Director, error) {
	return f.all(func(data.Director) bool { return true })
}

type fakeGenres struct{ *table[data.Genre] }

func (f fakeGenres) Insert(_ context.Context, g *data.Genre) error {
	return f.insert(func(id int64) data.Genre {
		g.ID = id
		return *g
	})
}

func (f fakeGenres) Get(_ context.Context, id int64) (*data.Genre, error) {
	g, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (f fakeGenres) Update(_ context.Context, id int64, p data.GenrePatch) (*data.Genre, error) {
	g, err := f.update(id, func(g *data.Genre) {
		if p.Name != nil {
			g.Name = *p.Name
		}
		if p.Description != nil {
			g.Description = *p.Description
		}
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (f fakeGenres) Delete(_ context.Context, id int64) error {
	return f.delete(id)
}

func (f fakeGenres) GetAll(_ context.Context) ([]data.Genre, error) {
	return f.all(func(data.Genre) bool { return true })
}

type stores struct {
	movies    *table[data.Movie]
	directors *table[data.Director]
	genres    *table[data.Genre]
}

func newTestApplication(t *testing.T) (*application, *stores) {
	t.Helper()

	cfg := config.Default()
	cfg.Limiter.Enabled = false

	s := &stores{
		movies:    newTable[data.Movie](),
		directors: newTable[data.Director](),
		genres:    newTable[data.Genre](),
	}

	app := &application{
		config: cfg,
		logger: jsonlog.NewLogger(io.Discard, jsonlog.LevelInfo),
		models: data.Model{
			Movies:    fakeMovies{s.movies},
			Directors: fakeDirectors{s.directors},
			Genres:    fakeGenres{s.genres},
		},
		done: make(chan struct{}),
	}
	t.Cleanup(func() { close(app.done) })
	return app, s
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  json.RawMessage `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, body string) (int, http.Header, response) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	rs, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	raw, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	var resp response
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			t.Fatalf("%s %s: body %q is not an envelope: %v", method, path, raw, err)
		}
	}
	return rs.StatusCode, rs.Header, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}
