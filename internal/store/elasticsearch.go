// internal/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"franchise-catalog/internal/models"
)

const franchiseIndexMapping = `{
  "mappings": {
    "properties": {
      "id":   {"type": "keyword"},
      "name": {"type": "keyword"},
      "branches": {"type": "object", "enabled": false},
      "version": {"type": "long"}
    }
  }
}`

// maxListSize bounds List; the catalog keeps every franchise in one index.
const maxListSize = 10000

// casScript replaces the document only when its stored version matches
// params.expected and turns the update into a noop otherwise.
const casScript = `if (((Number) ctx._source.version).longValue() == ((Number) params.expected).longValue()) {
  ctx._source.name = params.doc.name;
  ctx._source.branches = params.doc.branches;
  ctx._source.version = params.doc.version;
} else {
  ctx.op = 'none';
}`

// ElasticsearchStore indexes one document per franchise. Inserts use
// op_type=create; updates run a scripted update that compares the stored
// version field, which Elasticsearch applies atomically per document.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchStore(client *elasticsearch.Client, index string) *ElasticsearchStore {
	if index == "" {
		index = "franchises"
	}
	return &ElasticsearchStore{client: client, index: index}
}

// EnsureIndex creates the index with its mapping when missing.
func (s *ElasticsearchStore) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(strings.NewReader(franchiseIndexMapping)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", s.index, res.Status())
	}
	return nil
}

type esGetResponse struct {
	Found  bool              `json:"found"`
	Source FranchiseDocument `json:"_source"`
}

func (s *ElasticsearchStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	res, err := s.client.Get(s.index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrDocumentNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch get %s: %s", id, res.Status())
	}

	var body esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode franchise document: %w", err)
	}
	if !body.Found {
		return nil, ErrDocumentNotFound
	}

	f, err := ToEntity(body.Source)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ElasticsearchStore) Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	next := f.Version() + 1
	if f.Version() == 0 {
		if err := s.create(ctx, f, next); err != nil {
			return nil, err
		}
	} else if err := s.compareAndSwap(ctx, f, next); err != nil {
		return nil, err
	}
	return f.WithVersion(next), nil
}

func (s *ElasticsearchStore) create(ctx context.Context, f *models.Franchise, version int64) error {
	payload, err := encode(f, version)
	if err != nil {
		return err
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(f.ID()),
		s.client.Index.WithOpType("create"),
		s.client.Index.WithRefresh("wait_for"),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create %s: %w", f.ID(), err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusConflict {
		return ErrVersionConflict
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch create %s: %s", f.ID(), res.Status())
	}
	return nil
}

type esUpdateResponse struct {
	Result string `json:"result"`
}

func (s *ElasticsearchStore) compareAndSwap(ctx context.Context, f *models.Franchise, version int64) error {
	doc := ToDocument(f)
	doc.Version = version
	body, err := json.Marshal(map[string]interface{}{
		"script": map[string]interface{}{
			"lang":   "painless",
			"source": casScript,
			"params": map[string]interface{}{
				"expected": f.Version(),
				"doc":      doc,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("encode franchise %s: %w", f.ID(), err)
	}

	res, err := s.client.Update(
		s.index,
		f.ID(),
		bytes.NewReader(body),
		s.client.Update.WithRefresh("wait_for"),
		s.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch update %s: %w", f.ID(), err)
	}
	defer res.Body.Close()

	// 404 is a missing document, 409 a write racing inside Elasticsearch.
	if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusConflict {
		return ErrVersionConflict
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch update %s: %s", f.ID(), res.Status())
	}

	var out esUpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode update response: %w", err)
	}
	if out.Result == "noop" {
		return ErrVersionConflict
	}
	return nil
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source FranchiseDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchStore) List(ctx context.Context) ([]*models.Franchise, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(`{"query":{"match_all":{}},"sort":[{"id":"asc"}]}`)),
		s.client.Search.WithSize(maxListSize),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []*models.Franchise{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", res.Status())
	}

	var body esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]*models.Franchise, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		f, err := ToEntity(hit.Source)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *ElasticsearchStore) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
