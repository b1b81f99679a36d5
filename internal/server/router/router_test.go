package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/config"
	"github.com/xtding233/egg-gacha/internal/egg"
	"github.com/xtding233/egg-gacha/internal/server/handlers"
	"github.com/xtding233/egg-gacha/internal/service"
)

func intp(v int) *int { return &v }

func newEngine() http.Handler {
	store := catalog.NewStore(catalog.Catalog{
		{Key: 1, Name: "BULBASAUR", EggType: intp(1)},
		{Key: 984, Name: "GREAT_TUSK", EggType: intp(4)},
	})
	svc := service.NewEggService(store, config.Settings{
		MaxBatch:  99,
		MaxTrials: 100,
		Presets: map[string]config.BatchParams{
			"paradox": {Tier: intp(6), Amount: intp(3)},
		},
	}, nil)
	return New(handlers.NewEggsHandler(svc, nil), nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newEngine(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestGenerateEggs(t *testing.T) {
	rec := do(t, newEngine(), http.MethodPost, "/eggs", `{"preset":"paradox","shiny":true,"variantTier":1,"seed":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Tier  string    `json:"tier"`
		Count int       `json:"count"`
		Eggs  []egg.Egg `json:"eggs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Tier != "Paradox" || resp.Count != 3 || len(resp.Eggs) != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
	for i, e := range resp.Eggs {
		if e.Species == nil || *e.Species != 984 || e.Tier != 3 || e.HatchWaves != 100 {
			t.Fatalf("egg %d: %+v", i, e)
		}
	}
}

func TestGenerateEggsBadRequest(t *testing.T) {
	h := newEngine()
	if rec := do(t, h, http.MethodPost, "/eggs", `{"amount":`); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status=%d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/eggs", `{"amount":100}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized batch: status=%d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/eggs", `{"preset":"missing"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown preset: status=%d", rec.Code)
	}
}

func TestSimulate(t *testing.T) {
	rec := do(t, newEngine(), http.MethodPost, "/simulate", `{"amount":10,"shiny":true,"variantTier":2,"trials":5,"seed":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var rep egg.SimReport
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Trials != 5 || rep.Shiny.Mean != 10 || rep.Substituted.Mean != 10 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestPresets(t *testing.T) {
	rec := do(t, newEngine(), http.MethodGet, "/presets", "")
	var resp struct {
		Presets map[string]config.BatchParams `json:"presets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	p, ok := resp.Presets["paradox"]
	if !ok || p.Tier == nil || *p.Tier != 6 {
		t.Fatalf("unexpected presets %+v", resp.Presets)
	}
}
