package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"parmine/internal/document"
	"parmine/internal/logging"
)

// HTTPDoer describes the HTTP client used by the indexing sink.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Record is one indexable segment.
type Record struct {
	ID    string `json:"id"`
	DocID string `json:"doc_id"`
	SegID string `json:"seg_id"`
	Lang  string `json:"lang"`
	Text  string `json:"text"`
}

// PostOptions control commit behaviour per batch.
type PostOptions struct {
	Commit     bool
	SoftCommit bool
}

// Client posts JSON record batches to a search service update endpoint.
type Client struct {
	updateURL string
	client    HTTPDoer
	logger    *slog.Logger
}

// New builds a client for the service at baseURL. client may be nil, in which
// case http.DefaultClient is used.
func New(baseURL string, client HTTPDoer, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		updateURL: strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/update/json",
		client:    client,
		logger:    logger.With(slog.String(logging.FieldComponent, "indexer")),
	}
}

// Post sends one batch of records for upsert.
func (c *Client) Post(ctx context.Context, records []Record, opts PostOptions) error {
	url := c.updateURL
	switch {
	case opts.Commit:
		url += "?commit=true"
	case opts.SoftCommit:
		url += "?softCommit=true"
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build index request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index service returned %d", resp.StatusCode)
	}
	return nil
}

// PostAll buffers records into batches of batchSize and posts each batch,
// returning the number of records posted.
func (c *Client) PostAll(ctx context.Context, records []Record, batchSize int, opts PostOptions) (int, error) {
	if batchSize <= 0 {
		batchSize = len(records)
	}
	posted := 0
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		if err := c.Post(ctx, records[start:end], opts); err != nil {
			return posted, err
		}
		posted = end
		c.logger.Info("posted batch", slog.Int("records", posted), slog.Int("total", len(records)))
	}
	return posted, nil
}

// FromDocument flattens a document into indexable records.
func FromDocument(doc *document.Document) []Record {
	records := make([]Record, 0, doc.Len())
	for _, seg := range doc.Segments() {
		records = append(records, Record{
			ID:    doc.ID + "/" + seg.ID,
			DocID: doc.ID,
			SegID: seg.ID,
			Lang:  doc.Lang,
			Text:  seg.Text,
		})
	}
	return records
}
