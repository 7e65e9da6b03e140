package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newTestRepository(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*ElasticsearchRepository, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		respond(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewElasticsearchRepositoryWithClient(client, "audit-test"), &requests
}

func TestElasticsearchRepository_LogAccess(t *testing.T) {
	repo, requests := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	entry := AuditLog{
		ID:        "entry-1",
		Timestamp: time.Date(2024, 7, 8, 10, 0, 0, 0, time.UTC),
		UserID:    7,
		Action:    ActionAccessDecision,
		Resource:  "document:42",
		Status:    StatusFailure,
		Severity:  "CRITICAL",
		Reasons:   []string{"Policy engine denied (ABAC/RuBAC)"},
	}
	require.NoError(t, repo.LogAccess(context.Background(), entry))

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/audit-test/_doc/entry-1", req.path)

	var stored AuditLog
	require.NoError(t, json.Unmarshal([]byte(req.body), &stored))
	assert.Equal(t, entry.UserID, stored.UserID)
	assert.Equal(t, entry.Reasons, stored.Reasons)
}

func TestElasticsearchRepository_LogAccessError(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})

	err := repo.LogAccess(context.Background(), AuditLog{ID: "x"})
	assert.Error(t, err)
}

func TestElasticsearchRepository_QueryLogs(t *testing.T) {
	repo, requests := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"id":"a","user_id":7,"action":"DOCUMENT_CREATE","status":"SUCCESS","severity":"INFO"}},
			{"_source":{"id":"b","user_id":7,"action":"DOCUMENT_ACCESS_DECISION","status":"FAILURE","severity":"WARN","reasons":["MAC: insufficient clearance"]}}
		]}}`))
	})

	logs, err := repo.QueryLogs(context.Background(), AuditQuery{
		From:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		UserID:   7,
		Resource: "document:42",
	})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[1].ID)
	assert.Equal(t, []string{"MAC: insufficient clearance"}, logs[1].Reasons)

	req := (*requests)[0]
	assert.Equal(t, "/audit-test/_search", req.path)
	assert.Contains(t, req.body, `"user_id":7`)
	assert.Contains(t, req.body, `"resource":"document:42"`)
	assert.Contains(t, req.body, `"gte":"2024-07-01T00:00:00Z"`)
	assert.NotContains(t, req.body, `"lte"`)
}

func TestBuildQuery_MatchAllWithoutFilters(t *testing.T) {
	q := buildQuery(AuditQuery{})
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "match_all"))
}
