package main

import (
	"net/http"
	"strings"
	"testing"
)

type namedRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var namedResources = []struct {
	ns    string
	count func(*stores) int
}{
	{"directors", func(s *stores) int { return s.directors.count() }},
	{"genres", func(s *stores) int { return s.genres.count() }},
}

func TestNamedResourceLifecycle(t *testing.T) {
	for _, res := range namedResources {
		t.Run(res.ns, func(t *testing.T) {
			app, s := newTestApplication(t)
			ts := newTestServer(t, app.routes())
			base := "/" + res.ns + "/"

			code, _, resp := ts.do(t, http.MethodGet, base, "")
			if code != http.StatusOK || string(resp.Data) != "[]" {
				t.Fatalf("empty list: status = %d, data = %s", code, resp.Data)
			}

			code, header, resp := ts.do(t, http.MethodPost, base, `{"name":"Denis Villeneuve","description":"Canadian filmmaker"}`)
			if code != http.StatusCreated {
				t.Fatalf("POST status = %d (%s)", code, resp.Error)
			}
			created := decode[namedRecord](t, resp.Data)
			if created != (namedRecord{ID: 1, Name: "Denis Villeneuve", Description: "Canadian filmmaker"}) {
				t.Fatalf("created = %+v", created)
			}
			if loc := header.Get("Location"); loc != base+"1/" {
				t.Errorf("Location = %q", loc)
			}

			code, _, resp = ts.do(t, http.MethodPut, base+"1/", `{"name":"Villeneuve"}`)
			if code != http.StatusOK {
				t.Fatalf("PUT status = %d", code)
			}

			code, _, resp = ts.do(t, http.MethodGet, base+"1/", "")
			if code != http.StatusOK {
				t.Fatalf("GET status = %d", code)
			}
			want := namedRecord{ID: 1, Name: "Villeneuve", Description: "Canadian filmmaker"}
	if got := decode[namedRecord](t, resp.Data); got != want {
				t.Errorf("GET = %+v", got)
			}

			code, _, resp = ts.do(t, http.MethodGet, base, "")
			if list := decode[[]namedRecord](t, resp.Data); code != http.StatusOK || len(list) != 1 {
				t.Errorf("list: status = %d, items = %d", code, len(list))
			}

			code, _, _ = ts.do(t, http.MethodDelete, base+"1/", "")
			if code != http.StatusOK {
				t.Fatalf("DELETE status = %d", code)
			}
			if n := res.count(s); n != 0 {
				t.Errorf("rows after delete = %d", n)
			}

			code, _, _ = ts.do(t, http.MethodDelete, base+"1/", "")
			if code != http.StatusBadRequest {
				t.Errorf("repeated DELETE status = %d, want 400", code)
			}
		})
	}
}

func TestNamedResourceShowMissingIsNotFound(t *testing.T) {
	for _, res := range namedResources {
		t.Run(res.ns, func(t *testing.T) {
			app, _ := newTestApplication(t)
			ts := newTestServer(t, app.routes())

			code, _, resp := ts.do(t, http.MethodGet, "/"+res.ns+"/7/", "")
			if code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", code)
			}
			if resp.Status != "error" || len(resp.Data) != 0 {
				t.Errorf("body = %+v", resp)
			}
		})
	}
}

func TestNamedResourceRejectsBadInput(t *testing.T) {
	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodPost, "", `{"name":`, http.StatusBadRequest},
		{http.MethodPost, "", `{"name":"x","born":1970}`, http.StatusBadRequest},
		{http.MethodPost, "", `{}`, http.StatusUnprocessableEntity},
		{http.MethodPut, "1/", `{"name":""}`, http.StatusUnprocessableEntity},
		{http.MethodPut, "1/", `{"description":"` + strings.Repeat("d", 5001) + `"}`, http.StatusUnprocessableEntity},
		{http.MethodPut, "9/", `{"name":"Nobody"}`, http.StatusBadRequest},
		{http.MethodDelete, "9/", ``, http.StatusBadRequest},
	}

	for _, res := range namedResources {
		t.Run(res.ns, func(t *testing.T) {
			app, s := newTestApplication(t)
			ts := newTestServer(t, app.routes())
			base := "/" + res.ns + "/"

			if code, _, _ := ts.do(t, http.MethodPost, base, `{"name":"Seed"}`); code != http.StatusCreated {
				t.Fatalf("seed status = %d", code)
			}

			for _, tt := range tests {
				code, _, _ := ts.do(t, tt.method, base+tt.path, tt.body)
				if code != tt.code {
					t.Errorf("%s %s %s: status = %d, want %d", tt.method, base+tt.path, tt.body, code, tt.code)
				}
			}
			if n := res.count(s); n != 1 {
				t.Errorf("rows = %d, want 1", n)
			}
		})
	}
}
