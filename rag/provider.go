// rag/provider.go
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Provider is the primary retrieval backend seam. The gateway must work
// correctly with the provider entirely absent; any probe or query failure
// is an expected, recoverable condition that triggers the local fallback.
type Provider interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, namespace string, filter map[string]string, queryText string, topK int) ([]Hit, error)
}

// Hit is one raw provider match before normalization.
type Hit struct {
	ID       string
	Score    float64
	Metadata map[string]interface{}
}

// ElasticsearchProvider serves retrieval queries from an Elasticsearch
// index, one namespace per document partition field.
type ElasticsearchProvider struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewElasticsearchProvider(url, index string, timeout time.Duration) (*ElasticsearchProvider, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, err
	}
	return &ElasticsearchProvider{client: client, index: index, timeout: timeout}, nil
}

// Ping is the explicit availability probe: a failed handshake means the
// backend is unavailable, consumed deterministically by the orchestrator
// rather than intercepted as a fault mid-query.
func (p *ElasticsearchProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.client.Info(p.client.Info.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch info: %s", res.String())
	}
	return nil
}

// Query searches the namespace partition with term filters built from the
// claims projection. The call is bounded by the configured timeout so a
// slow backend cannot stall the gateway.
func (p *ElasticsearchProvider) Query(ctx context.Context, namespace string, filter map[string]string, queryText string, topK int) ([]Hit, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	must := []interface{}{
		map[string]interface{}{
			"term": map[string]interface{}{"namespace": namespace},
		},
	}
	for field, value := range filter {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}

	query := map[string]interface{}{
		"size": topK,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": must,
				"must": []interface{}{
					map[string]interface{}{
						"match": map[string]interface{}{"content": queryText},
					},
				},
			},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := p.client.Search(
		p.client.Search.WithContext(ctx),
		p.client.Search.WithIndex(p.index),
		p.client.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var rmap struct {
		Hits struct {
			Hits []struct {
				ID     string                 `json:"_id"`
				Score  float64                `json:"_score"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&rmap); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(rmap.Hits.Hits))
	for _, h := range rmap.Hits.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score, Metadata: h.Source})
	}
	return hits, nil
}
