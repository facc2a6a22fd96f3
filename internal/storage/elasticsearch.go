// Package storage provides the Elasticsearch-backed submission store for the
// phrase-gate intake pipeline.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/elasticsearch/mappings"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/retry"
)

// DefaultSubmissionIndex is the index submissions are written to when no
// index name is configured.
const DefaultSubmissionIndex = "phrase_submissions"

// ClientConfig holds Elasticsearch client configuration.
type ClientConfig struct {
	Addresses  []string
	Username   string
	Password   string
	MaxRetries int
}

// NewClient creates an Elasticsearch client and verifies connectivity.
func NewClient(cfg ClientConfig) (*es.Client, error) {
	addresses := make([]string, 0, len(cfg.Addresses))
	for _, addr := range cfg.Addresses {
		if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
			addr = "http://" + addr
		}
		addresses = append(addresses, addr)
	}

	clientConfig := es.Config{
		Addresses:  addresses,
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return client, nil
}

// SubmissionStorage implements submission intake operations over the
// phrase_submissions index. It is the poller's SubmissionStore.
type SubmissionStorage struct {
	client    *es.Client
	indexName string
	logger    logging.Logger
}

// NewSubmissionStorage creates a submission store over an existing client.
func NewSubmissionStorage(client *es.Client, indexName string, logger logging.Logger) *SubmissionStorage {
	if indexName == "" {
		indexName = DefaultSubmissionIndex
	}

	return &SubmissionStorage{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}
}

// IndexName returns the submissions index name.
func (s *SubmissionStorage) IndexName() string {
	return s.indexName
}

// EnsureIndex creates the submissions index with its mapping when missing.
func (s *SubmissionStorage) EnsureIndex(ctx context.Context) error {
	exists, err := s.indexExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	mapping := mappings.NewSubmissionMapping()
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("invalid submission mapping: %w", err)
	}

	body, err := mapping.GetJSON()
	if err != nil {
		return fmt.Errorf("failed to render submission mapping: %w", err)
	}

	res, err := s.client.Indices.Create(
		s.indexName,
		s.client.Indices.Create.WithBody(strings.NewReader(body)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", s.indexName, res.String())
	}

	s.logger.Info("created submissions index", logging.String("index", s.indexName))

	return nil
}

func (s *SubmissionStorage) indexExists(ctx context.Context) (bool, error) {
	res, err := s.client.Indices.Exists(
		[]string{s.indexName},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, fmt.Errorf("error checking index existence: %s", res.String())
	}

	return true, nil
}

// FetchPending returns up to limit pending submissions, oldest first.
// Transient search failures are retried with backoff.
func (s *SubmissionStorage) FetchPending(ctx context.Context, limit int) ([]*domain.PhraseSubmission, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{
				"decision_status": domain.SubmissionPending,
			},
		},
		"size": limit,
		"sort": []map[string]any{
			{
				"submitted_at": map[string]any{
					"order": "asc",
				},
			},
		},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	var submissions []*domain.PhraseSubmission
	err = retry.DoWithDefaults(ctx, func() error {
		var searchErr error
		submissions, searchErr = s.searchSubmissions(ctx, queryBytes)
		return searchErr
	})
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (s *SubmissionStorage) searchSubmissions(ctx context.Context, queryBytes []byte) ([]*domain.PhraseSubmission, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.indexName),
		s.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				ID     string                  `json:"_id"`
				Source domain.PhraseSubmission `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	submissions := make([]*domain.PhraseSubmission, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		submission := hit.Source
		// Preserve the Elasticsearch document ID if not already set
		if submission.ID == "" {
			submission.ID = hit.ID
		}
		submissions = append(submissions, &submission)
	}

	return submissions, nil
}

// UpdateDecision writes the decision back onto the submission document and
// marks it scored.
func (s *SubmissionStorage) UpdateDecision(ctx context.Context, submissionID string, result *domain.DecisionResult) error {
	now := time.Now().UTC()
	update := map[string]any{
		"doc": map[string]any{
			"decision":        result,
			"decision_status": domain.SubmissionScored,
			"scored_at":       now,
			"error_message":   "",
		},
	}

	return s.updateSubmission(ctx, submissionID, update)
}

// MarkFailed marks a submission that could not be scored.
func (s *SubmissionStorage) MarkFailed(ctx context.Context, submissionID, reason string) error {
	now := time.Now().UTC()
	update := map[string]any{
		"doc": map[string]any{
			"decision_status": domain.SubmissionFailed,
			"error_message":   reason,
			"scored_at":       now,
		},
	}

	return s.updateSubmission(ctx, submissionID, update)
}

func (s *SubmissionStorage) updateSubmission(ctx context.Context, submissionID string, update map[string]any) error {
	updateBytes, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	res, err := s.client.Update(
		s.indexName,
		submissionID,
		bytes.NewReader(updateBytes),
		s.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error updating document %s: %s", submissionID, res.String())
	}

	return nil
}

// IndexSubmission enqueues a single submission.
func (s *SubmissionStorage) IndexSubmission(ctx context.Context, submission *domain.PhraseSubmission) error {
	docBytes, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := s.client.Index(
		s.indexName,
		bytes.NewReader(docBytes),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(submission.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

// BulkIndexSubmissions enqueues multiple submissions in one request.
func (s *SubmissionStorage) BulkIndexSubmissions(ctx context.Context, submissions []*domain.PhraseSubmission) error {
	if len(submissions) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, submission := range submissions {
		meta := map[string]any{
			"index": map[string]any{
				"_index": s.indexName,
				"_id":    submission.ID,
			},
		}

		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(submission); err != nil {
			return fmt.Errorf("failed to encode submission: %w", err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	return nil
}

// CountByStatus returns submission counts per decision status.
func (s *SubmissionStorage) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, status := range []string{domain.SubmissionPending, domain.SubmissionScored, domain.SubmissionFailed} {
		count, err := s.countStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, nil
}

func (s *SubmissionStorage) countStatus(ctx context.Context, status string) (int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{
				"decision_status": status,
			},
		},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.indexName),
		s.client.Count.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("error counting status %s: %s", status, res.String())
	}

	var countResult struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&countResult); err != nil {
		return 0, fmt.Errorf("error decoding count response: %w", err)
	}

	return countResult.Count, nil
}

// TestConnection tests the connection to Elasticsearch.
func (s *SubmissionStorage) TestConnection(ctx context.Context) error {
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response from Elasticsearch: %s", res.String())
	}

	return nil
}
