package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

func snapshotOf(t *testing.T, ds *dataset.Dataset) pipeline.Snapshot {
	t.Helper()
	net, err := network.FromDataset(ds)
	if err != nil {
		t.Fatalf("FromDataset: %v", err)
	}
	snap, err := pipeline.NewSnapshot(net)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func annAndBo() *dataset.Dataset {
	return &dataset.Dataset{
		People: []dataset.Person{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bo"}},
		Relationships: []dataset.Relationship{
			{Source: "a", Target: "b", Type: "mentor", Weight: 2},
		},
	}
}

func newTestServer(t *testing.T, ds *dataset.Dataset) (*Server, *httptest.Server) {
	t.Helper()
	s := New(snapshotOf(t, ds), Config{
		Logger:  log.New(io.Discard),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "metrics") }),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestPeople(t *testing.T) {
	_, ts := newTestServer(t, annAndBo())

	var body peopleResponse
	if code := getJSON(t, ts.URL+"/api/people", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	want := []string{"(none)", "Ann", "Bo"}
	if strings.Join(body.Options, ",") != strings.Join(want, ",") {
		t.Errorf("options = %v, want %v", body.Options, want)
	}
}

func TestRender(t *testing.T) {
	_, ts := newTestServer(t, annAndBo())

	tests := []struct {
		name       string
		query      string
		status     int
		wantScene  bool
		wantPanel  string
		wantCode   string
		emphasized string
	}{
		{"unselected", "", http.StatusOK, true, "", "", ""},
		{"none sentinel", "?person=%28none%29", http.StatusOK, true, "", "", ""},
		{"selected", "?person=Ann", http.StatusOK, true, "Ann", "", "a"},
		{"unknown", "?person=Zed", http.StatusNotFound, false, "", "NOT_FOUND", ""},
		{"control chars", "?person=a%01b", http.StatusBadRequest, false, "", "INVALID_INPUT", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body renderResponse
			if code := getJSON(t, ts.URL+"/api/render"+tt.query, &body); code != tt.status {
				t.Fatalf("status = %d, want %d", code, tt.status)
			}
			if body.ID == "" {
				t.Error("response should carry a render pass ID")
			}
			if (body.Scene != nil) != tt.wantScene {
				t.Fatalf("scene present = %v, want %v", body.Scene != nil, tt.wantScene)
			}
			if body.Panel.Name != tt.wantPanel {
				t.Errorf("panel name = %q, want %q", body.Panel.Name, tt.wantPanel)
			}
			if tt.wantCode != "" {
				if body.Error == nil || body.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", body.Error, tt.wantCode)
				}
				if body.Panel.Message == "" {
					t.Error("failed selection should return an error panel")
				}
				return
			}
			id, ok := body.Scene.Emphasized()
			if id != tt.emphasized || ok != (tt.emphasized != "") {
				t.Errorf("emphasized = %q, %v; want %q", id, ok, tt.emphasized)
			}
		})
	}
}

func TestRenderPanelConnections(t *testing.T) {
	_, ts := newTestServer(t, annAndBo())

	var body renderResponse
	getJSON(t, ts.URL+"/api/render?person=Ann", &body)
	if len(body.Panel.Connections) != 1 || body.Panel.Connections[0].Name != "Bo" || body.Panel.Connections[0].Type != "mentor" {
		t.Errorf("connections = %+v, want [(Bo, mentor)]", body.Panel.Connections)
	}
	if !strings.Contains(body.Markdown, "- Bo (mentor)") {
		t.Errorf("markdown = %q", body.Markdown)
	}
}

func TestRenderAmbiguousName(t *testing.T) {
	ds := &dataset.Dataset{People: []dataset.Person{{ID: "a", Name: "Sam"}, {ID: "b", Name: "Sam"}}}
	_, ts := newTestServer(t, ds)

	var body renderResponse
	if code := getJSON(t, ts.URL+"/api/render?person=Sam", &body); code != http.StatusConflict {
		t.Errorf("status = %d, want 409", code)
	}
}

func TestSwap(t *testing.T) {
	s, ts := newTestServer(t, annAndBo())

	s.Swap(snapshotOf(t, &dataset.Dataset{People: []dataset.Person{{ID: "z", Name: "Zed"}}}))

	var body renderResponse
	if code := getJSON(t, ts.URL+"/api/render?person=Zed", &body); code != http.StatusOK {
		t.Fatalf("status = %d after swap, want 200", code)
	}
	if code := getJSON(t, ts.URL+"/api/render?person=Ann", &body); code != http.StatusNotFound {
		t.Errorf("status = %d for removed person, want 404", code)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, annAndBo())

	var body healthResponse
	if code := getJSON(t, ts.URL+"/healthz", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Status != "ok" || body.People != 2 || body.Relationships != 1 {
		t.Errorf("health = %+v", body)
	}
}

func TestPageAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, annAndBo())

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{DefaultTitle, DefaultInstructions, "vis-network", "new AbortController()", "ctrl !== inflight"}},
		{"/metrics", []string{"metrics"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(data), w) {
					t.Errorf("body missing %q", w)
				}
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeAmbiguousName, "x"), http.StatusConflict},
		{errors.New(errors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidPath, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, _ := newTestServer(t, annAndBo())
	ctx, cancel := context.WithCancel(context.Background())

	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a })
	}()

	addr := <-addrc
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-errc:
		if err != nil && err != context.Canceled {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
