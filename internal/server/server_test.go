package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(New(engine.NewService(db), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestCreateAndListDiet(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/diet", `{"calorie_intake":2000,"veg_ratio":0.5,"protein_ratio":0.3}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created storage.DietEntry
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	resp.Body.Close()
	if created.ID == "" || created.CalorieIntake != 2000 {
		t.Fatalf("unexpected created entry: %+v", created)
	}

	resp, err := http.Get(srv.URL + "/api/diet")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var entries []storage.DietEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != created.ID {
		t.Fatalf("list = %+v", entries)
	}
}

func TestDeleteDietEntry(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/diet", `{"calorie_intake":1800,"veg_ratio":0.4,"protein_ratio":0.3}`)
	var created storage.DietEntry
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/diet/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}

	// The list is empty again, and a second delete is a 404.
	listResp, err := http.Get(srv.URL + "/api/diet")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var entries []storage.DietEntry
	if err := json.NewDecoder(listResp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	listResp.Body.Close()
	if len(entries) != 0 {
		t.Fatalf("list after delete = %+v", entries)
	}

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/diet/"+created.ID, nil)
	delResp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d", delResp.StatusCode)
	}
}

func TestCreateDietValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/diet", `{"veg_ratio":3.5}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp2 := postJSON(t, srv.URL+"/api/diet", `not json`)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp2.StatusCode)
	}
}

func TestAdviceEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/advice")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var advice []engine.AdviceItem
	if err := json.NewDecoder(resp.Body).Decode(&advice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(advice) != 0 {
		t.Fatalf("advice on empty data: %+v", advice)
	}

	resp2, err := http.Get(srv.URL + "/api/advice?days=zero")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad days param: status = %d, want 400", resp2.StatusCode)
	}
}

func TestScoreEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/exercise", `{"daily_steps":12000}`)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/score")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var state engine.GamificationState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.TotalPoints != 25 || state.Level != 1 || state.ProgressToNextLevel != 12 {
		t.Fatalf("state = %+v", state)
	}
}

func TestLayoutEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Default layout comes back before anything is stored.
	resp, err := http.Get(srv.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var layout struct {
		Widgets []struct {
			Kind    string `json:"kind"`
			Visible bool   `json:"visible"`
		} `json:"widgets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(layout.Widgets) != 6 {
		t.Fatalf("default layout has %d widgets", len(layout.Widgets))
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/layout",
		strings.NewReader(`{"widgets":[{"kind":"score","title":"Score","visible":false},{"kind":"nonsense","visible":true}]}`))
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", putResp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if err := json.NewDecoder(resp2.Body).Decode(&layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if layout.Widgets[0].Kind != "score" || layout.Widgets[0].Visible {
		t.Fatalf("stored layout = %+v", layout.Widgets)
	}
	for _, w := range layout.Widgets {
		if w.Kind == "nonsense" {
			t.Fatalf("unknown widget kind persisted")
		}
	}
}

func TestReportWithoutAIClient(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/report", `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
