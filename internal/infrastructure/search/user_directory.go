package search

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// UserHit is a directory search result. Emails are never indexed.
type UserHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserDirectory indexes users by display name for member lookup.
type UserDirectory struct {
	es    *elasticsearch.Client
	index string
}

func NewUserDirectory(es *elasticsearch.Client, index string) *UserDirectory {
	return &UserDirectory{es: es, index: index}
}

// Index upserts the user's directory document.
func (d *UserDirectory) Index(ctx context.Context, u *entity.User) error {
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: d.index, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, d.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a prefix-friendly match on name. size is clamped to 1..50.
func (d *UserDirectory) Search(ctx context.Context, q string, size int) ([]UserHit, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	b, err := json.Marshal(buildQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := d.es.Search(d.es.Search.WithContext(c), d.es.Search.WithIndex(d.index), d.es.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]UserHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func buildQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"match_bool_prefix": map[string]any{
				"name": q,
			},
		},
		"size": size,
	}
}
