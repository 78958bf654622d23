package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/evekit/pkg/crest"
	"github.com/matzehuels/evekit/pkg/errors"
)

func newFakeCrest(t *testing.T, pages *atomic.Int32) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/alliances/" && r.URL.Query().Get("page") == "2":
			pages.Add(1)
			io.WriteString(w, `{"items": [{"id": 2, "name": "Second", "shortName": "TWO"}]}`)
		case r.URL.Path == "/alliances/":
			pages.Add(1)
			io.WriteString(w, `{"items": [{"alliance": {"id": 1, "name": "First", "shortName": "ONE"}}],
				"next": {"href": "`+srv.URL+`/alliances/?page=2"}}`)
		case r.URL.Path == "/market/10000002/types/34/history/":
			if !strings.HasPrefix(r.Header.Get("Accept"), crest.MarketHistoryMediaType) {
				http.Error(w, "bad accept", http.StatusNotAcceptable)
				return
			}
			io.WriteString(w, `{"totalCount": 1, "pageCount": 1, "items": [
				{"volume": 100, "orderCount": 5, "lowPrice": 5.1, "highPrice": 5.9, "avgPrice": 5.5, "date": "2014-11-23T00:00:00"}]}`)
		case r.URL.Path == "/incursions/":
			io.WriteString(w, `{"totalCount": 0, "items": []}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCrestAlliancesFollowsPages(t *testing.T) {
	var pages atomic.Int32
	srv := newFakeCrest(t, &pages)
	setupEnv(t, "", srv.URL+"/")

	if err := execute(t, "crest", "alliances"); err != nil {
		t.Fatalf("crest alliances: %v", err)
	}
	if got := pages.Load(); got != 1 {
		t.Errorf("pages fetched = %d, want 1", got)
	}

	pages.Store(0)
	if err := execute(t, "crest", "alliances", "--pages", "5"); err != nil {
		t.Fatalf("crest alliances --pages: %v", err)
	}
	if got := pages.Load(); got != 2 {
		t.Errorf("pages fetched = %d, want 2", got)
	}
}

func TestCrestMarketAndIncursions(t *testing.T) {
	var pages atomic.Int32
	srv := newFakeCrest(t, &pages)
	setupEnv(t, "", srv.URL+"/")

	if err := execute(t, "crest", "market", "10000002", "34"); err != nil {
		t.Fatalf("crest market: %v", err)
	}
	if err := execute(t, "crest", "incursions"); err != nil {
		t.Fatalf("crest incursions: %v", err)
	}
}

func TestCrestInvalidArguments(t *testing.T) {
	setupEnv(t, "", "")

	tests := [][]string{
		{"crest", "market", "abc", "34"},
		{"crest", "market", "10000002", "-1"},
		{"crest", "market", "10000002", "--", "-1"},
		{"crest", "market", "10000002", "34", "--days", "x"},
		{"crest", "alliance", "0"},
		{"crest", "killmail", "x", "hash"},
	}
	for _, args := range tests {
		if err := execute(t, args...); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%v: err = %v, want INVALID_INPUT", args, err)
		}
	}
}

func TestAllianceRow(t *testing.T) {
	tests := []struct {
		name string
		item crest.Resource
		want []string
	}{
		{
			name: "flat",
			item: crest.Resource{"id": float64(99000006), "name": "Everto Rex Regis", "shortName": "666"},
			want: []string{"99000006", "Everto Rex Regis", "666"},
		},
		{
			name: "nested",
			item: crest.Resource{"alliance": map[string]any{"id": float64(1), "name": "First", "shortName": "ONE"}},
			want: []string{"1", "First", "ONE"},
		},
		{
			name: "empty",
			item: crest.Resource{},
			want: []string{"0", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allianceRow(tt.item)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("allianceRow() = %v, want %v", got, tt.want)
			}
		})
	}
}
