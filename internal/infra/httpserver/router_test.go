package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i32sevit/analiza-tu-pc/internal/application"
	appanalyses "github.com/i32sevit/analiza-tu-pc/internal/application/analyses"
	domain "github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
	"github.com/i32sevit/analiza-tu-pc/internal/middleware"
)

type memRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	saved    map[string]map[domain.AnalysisID]*domain.Analysis
}

func newMemRepo() *memRepo {
	return &memRepo{
		counters: make(map[string]int64),
		saved:    make(map[string]map[domain.AnalysisID]*domain.Analysis),
	}
}

func (r *memRepo) ReserveID(_ context.Context, owner string) (domain.AnalysisID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[owner]++
	return domain.AnalysisID(r.counters[owner]), nil
}

func (r *memRepo) Save(_ context.Context, a *domain.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved[a.Owner] == nil {
		r.saved[a.Owner] = make(map[domain.AnalysisID]*domain.Analysis)
	}
	r.saved[a.Owner][a.ID] = a
	return nil
}

func (r *memRepo) Get(_ context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.saved[owner][id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) List(_ context.Context, owner string, offset, limit int) ([]*domain.Analysis, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Analysis
	for _, a := range r.saved[owner] {
		all = append(all, a)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memRepo) Delete(_ context.Context, owner string, id domain.AnalysisID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.saved[owner][id]; ok {
		delete(r.saved[owner], id)
		return true, nil
	}
	return false, nil
}

func (r *memRepo) Stats(_ context.Context, owner string) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := &domain.Stats{ProfileDistribution: make(map[string]int64)}
	var sum float64
	for o, recs := range r.saved {
		if owner != "" && o != owner {
			continue
		}
		for _, a := range recs {
			st.Count++
			sum += a.MainScore
			st.ProfileDistribution[a.MainProfile]++
		}
	}
	if st.Count > 0 {
		st.MeanScore = sum / float64(st.Count)
	}
	return st, nil
}

type stubSynth struct{}

func (stubSynth) Synthesize(_ hardware.Description, _ scoring.Result, id domain.AnalysisID, _ time.Time, _ string) (domain.Artifacts, error) {
	return domain.Artifacts{
		PDF:  []byte(fmt.Sprintf("%%PDF-%d", id)),
		JSON: []byte("{}"),
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := &appanalyses.Service{
		Repo:   repo,
		Synth:  stubSynth{},
		Engine: scoring.NewEngine(scoring.DefaultConfig()),
		Clock:  application.SystemClock{},
	}
	auth := middleware.OptionalAPIKeyAuth(map[string]string{"alice": "key-alice"})
	srv := httptest.NewServer(auth(NewRouter(svc, false, nil)))
	t.Cleanup(srv.Close)
	return srv, repo
}

func analyzeBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"cpu_model":     "i5",
		"cpu_speed_ghz": 3.0,
		"cores":         4,
		"ram_gb":        16,
		"disk_type":     "ssd",
		"gpu_vram_gb":   4,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func doRequest(t *testing.T, method, url, apiKey string, body *bytes.Buffer) *http.Response {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAnalyzeAsGuest(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "", analyzeBody(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out appanalyses.AnalyzeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, appanalyses.StatusSuccess, out.Status)
	assert.True(t, out.IsGuest)
	assert.NotZero(t, out.AnalysisID)
	assert.NotEmpty(t, out.Result.MainProfile)
	assert.Empty(t, repo.saved)
}

func TestAnalyzeAuthenticated(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "key-alice", analyzeBody(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out appanalyses.AnalyzeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.IsGuest)
	assert.EqualValues(t, 1, out.AnalysisID)
	require.Len(t, repo.saved["alice"], 1)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"cpu_speed_ghz": -1})
	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "", bytes.NewBuffer(body))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeRejectsMalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "", bytes.NewBufferString("{not json"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeRejectsInvalidKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "wrong-key", analyzeBody(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecordEndpointsRequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/analyses"},
		{http.MethodGet, "/v1/analyses/1"},
		{http.MethodDelete, "/v1/analyses/1"},
		{http.MethodGet, "/v1/stats"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := doRequest(t, tc.method, srv.URL+tc.path, "", nil)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestHistoryAndGet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "key-alice", analyzeBody(t))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/analyses?page=1&page_size=10", "key-alice", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page domain.PaginatedResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/analyses/1", "key-alice", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetUnknownIDReturns404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/v1/analyses/999", "key-alice", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/analyses/abc", "key-alice", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteRecord(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "key-alice", analyzeBody(t))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, srv.URL+"/v1/analyses/1", "key-alice", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, repo.saved["alice"])

	// a second delete finds nothing
	resp = doRequest(t, http.MethodDelete, srv.URL+"/v1/analyses/1", "key-alice", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/analyze", "key-alice", analyzeBody(t))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/stats", "key-alice", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st domain.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.EqualValues(t, 1, st.Count)
	assert.Greater(t, st.MeanScore, 0.0)

	// global stats is open to guests
	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/stats/global", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
