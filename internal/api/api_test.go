package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/causalcore/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *graph.Manager) {
	t.Helper()
	g := graph.New()
	srv := httptest.NewServer(NewRouter(g, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return srv, g
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func putDiamond(t *testing.T, base string) {
	t.Helper()
	for id, body := range map[string]string{
		"A": `{"dependents":["B","C"]}`,
		"B": `{"dependents":["D"]}`,
		"C": `{"dependents":["D"]}`,
		"D": `{}`,
	} {
		status, resp := do(t, http.MethodPut, base+"/v1/facts/"+id, body)
		require.Equal(t, http.StatusNoContent, status, resp)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	status, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK\n", body)
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	putDiamond(t, srv.URL)

	status, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "causalcore_graph_upserts_total")
}

func TestFactsAndInvalidation(t *testing.T) {
	srv, g := newTestServer(t)
	putDiamond(t, srv.URL)
	assert.Equal(t, 4, g.Len(context.Background()))

	status, body := do(t, http.MethodGet, srv.URL+"/v1/facts/A/invalidation", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"fact_id":"A","invalidated":["B","C","D"]}`, body)

	status, body = do(t, http.MethodGet, srv.URL+"/v1/facts/unknown/invalidation", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"fact_id":"unknown","invalidated":[]}`, body)
}

func TestPutFact_BadBody(t *testing.T) {
	srv, g := newTestServer(t)

	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: "nope"},
		{name: "wrong type", body: `{"dependents":"B"}`},
		{name: "unknown field", body: `{"deps":["B"]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, http.MethodPut, srv.URL+"/v1/facts/A", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body, `"error"`)
		})
	}
	assert.Zero(t, g.Len(context.Background()))
}

func TestAnalysisEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	putDiamond(t, srv.URL)

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "/v1/analysis/cycles", expected: `{"cycles":[]}`},
		{path: "/v1/analysis/communities", expected: `{"communities":[["A","B","C","D"]]}`},
		{path: "/v1/analysis/stats", expected: `{"facts":4,"triangles":0,"cliques":3,"diameter":2}`},
		{path: "/v1/analysis/similarity?a=B&b=C", expected: `{"a":"B","b":"C","jaccard":1}`},
		{path: "/v1/analysis/kcore?k=1", expected: `{"k":1,"facts":["A","B","C"]}`},
		{path: "/v1/analysis/flow?source=A&sink=D", expected: `{"source":"A","sink":"D","max_flow":1,"placeholder":true}`},
		{
			path:     "/v1/analysis/spanning-tree",
			expected: `{"edges":[{"from":"A","to":"B"},{"from":"A","to":"C"},{"from":"B","to":"D"}]}`,
		},
		{
			path:     "/v1/analysis/centrality",
			expected: `{"betweenness":{"A":2,"B":1,"C":1,"D":0},"closeness":{"A":0.3333333333333333,"B":0.5,"C":0.5,"D":1}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			status, body := do(t, http.MethodGet, srv.URL+tc.path, "")
			require.Equal(t, http.StatusOK, status, body)
			assert.JSONEq(t, tc.expected, body)
		})
	}
}

func TestPageRankEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, id := range []string{"A", "B"} {
		status, _ := do(t, http.MethodPut, srv.URL+"/v1/facts/"+id, `{"dependents":[]}`)
		require.Equal(t, http.StatusNoContent, status)
	}

	status, body := do(t, http.MethodGet, srv.URL+"/v1/analysis/pagerank?iterations=1&damping=0.5", "")
	require.Equal(t, http.StatusOK, status)

	var resp pageRankResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, 1, resp.Iterations)
	assert.InDelta(t, 0.25, resp.Ranks["A"], 1e-12)
	assert.InDelta(t, 0.25, resp.Ranks["B"], 1e-12)
}

func TestAnalysisEndpoints_BadParameters(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/v1/analysis/pagerank?iterations=-1",
		"/v1/analysis/pagerank?iterations=many",
		"/v1/analysis/pagerank?damping=1.5",
		"/v1/analysis/similarity?a=B",
		"/v1/analysis/kcore?k=-2",
		"/v1/analysis/kcore?k=x",
		"/v1/analysis/flow?source=A",
	} {
		t.Run(path, func(t *testing.T) {
			status, body := do(t, http.MethodGet, srv.URL+path, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body, `"error"`)
		})
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s, err := Listen("127.0.0.1:0", NewRouter(graph.New(), slog.Default()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.Addr() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
