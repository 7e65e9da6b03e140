// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const defaultQuerySize = 100

type Repository interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, q AuditQuery) ([]AuditLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewElasticsearchRepositoryWithClient(esClient, index), nil
}

func NewElasticsearchRepositoryWithClient(client *elasticsearch.Client, index string) *ElasticsearchRepository {
	if index == "" {
		index = "audit-logs"
	}
	return &ElasticsearchRepository{esClient: client, index: index}
}

// EnsureIndex creates the audit index with keyword mappings if it is missing.
func (r *ElasticsearchRepository) EnsureIndex(ctx context.Context) error {
	res, err := r.esClient.Indices.Exists([]string{r.index}, r.esClient.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
	  "mappings": {
	    "properties": {
	      "id":         {"type": "keyword"},
	      "timestamp":  {"type": "date"},
	      "user_id":    {"type": "long"},
	      "username":   {"type": "keyword"},
	      "action":     {"type": "keyword"},
	      "resource":   {"type": "keyword"},
	      "ip_address": {"type": "keyword"},
	      "status":     {"type": "keyword"},
	      "severity":   {"type": "keyword"},
	      "reasons":    {"type": "text"},
	      "details":    {"type": "object", "enabled": false}
	    }
	  }
	}`
	res, err = r.esClient.Indices.Create(r.index,
		r.esClient.Indices.Create.WithContext(ctx),
		r.esClient.Indices.Create.WithBody(strings.NewReader(mapping)))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error creating audit index: %s", res.String())
	}
	return nil
}

// LogAccess logs an audit action to Elasticsearch.
func (r *ElasticsearchRepository) LogAccess(ctx context.Context, log AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: log.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source AuditLog `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// QueryLogs returns matching entries, newest first.
func (r *ElasticsearchRepository) QueryLogs(ctx context.Context, q AuditQuery) ([]AuditLog, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(q)); err != nil {
		return nil, err
	}

	size := q.Size
	if size <= 0 {
		size = defaultQuerySize
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(&buf),
		r.esClient.Search.WithSize(size),
		r.esClient.Search.WithSort("timestamp:desc"),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	logs := make([]AuditLog, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}

func buildQuery(q AuditQuery) map[string]interface{} {
	must := []interface{}{}

	timeRange := map[string]interface{}{}
	if !q.From.IsZero() {
		timeRange["gte"] = q.From.Format(time.RFC3339)
	}
	if !q.To.IsZero() {
		timeRange["lte"] = q.To.Format(time.RFC3339)
	}
	if len(timeRange) > 0 {
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"timestamp": timeRange},
		})
	}
	if q.UserID != 0 {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"user_id": q.UserID}})
	}
	if q.Resource != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"resource": q.Resource}})
	}
	if q.Action != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"action": q.Action}})
	}

	if len(must) == 0 {
		return map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}}
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
}
