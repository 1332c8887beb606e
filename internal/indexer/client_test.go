package indexer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"parmine/internal/document"
	"parmine/internal/indexer"
	"parmine/internal/logging"
)

type fakeDoer struct {
	requests []capturedRequest
	status   int
	err      error
}

type capturedRequest struct {
	url     string
	body    []indexer.Record
	headers http.Header
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	var records []indexer.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	f.requests = append(f.requests, capturedRequest{
		url:     req.URL.String(),
		body:    records,
		headers: req.Header,
	})
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("{}")),
	}, nil
}

func sampleRecords(n int) []indexer.Record {
	records := make([]indexer.Record, n)
	for i := range records {
		records[i] = indexer.Record{
			ID:    "SIN_NW_1/segment-" + string(rune('0'+i)),
			DocID: "SIN_NW_1",
			SegID: "segment-" + string(rune('0'+i)),
			Lang:  "sin",
			Text:  "text",
		}
	}
	return records
}

func TestPost(t *testing.T) {
	doer := &fakeDoer{}
	client := indexer.New("http://solr:8983/corpus/", doer, logging.NewNop())

	if err := client.Post(context.Background(), sampleRecords(2), indexer.PostOptions{}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(doer.requests))
	}
	req := doer.requests[0]
	// Trailing slash on the base URL must not double up.
	if req.url != "http://solr:8983/corpus/update/json" {
		t.Fatalf("unexpected url %q", req.url)
	}
	if got := req.headers.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if len(req.body) != 2 || req.body[0].DocID != "SIN_NW_1" {
		t.Fatalf("unexpected body: %v", req.body)
	}
}

func TestPostCommitFlags(t *testing.T) {
	doer := &fakeDoer{}
	client := indexer.New("http://solr:8983/corpus", doer, logging.NewNop())
	ctx := context.Background()

	if err := client.Post(ctx, sampleRecords(1), indexer.PostOptions{Commit: true}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := client.Post(ctx, sampleRecords(1), indexer.PostOptions{SoftCommit: true}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if !strings.HasSuffix(doer.requests[0].url, "?commit=true") {
		t.Fatalf("expected commit parameter, got %q", doer.requests[0].url)
	}
	if !strings.HasSuffix(doer.requests[1].url, "?softCommit=true") {
		t.Fatalf("expected softCommit parameter, got %q", doer.requests[1].url)
	}
}

func TestPostErrorStatus(t *testing.T) {
	doer := &fakeDoer{status: http.StatusInternalServerError}
	client := indexer.New("http://solr:8983/corpus", doer, logging.NewNop())
	if err := client.Post(context.Background(), sampleRecords(1), indexer.PostOptions{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestPostAllBatches(t *testing.T) {
	doer := &fakeDoer{}
	client := indexer.New("http://solr:8983/corpus", doer, logging.NewNop())

	posted, err := client.PostAll(context.Background(), sampleRecords(5), 2, indexer.PostOptions{})
	if err != nil {
		t.Fatalf("post all: %v", err)
	}
	if posted != 5 {
		t.Fatalf("expected 5 posted, got %d", posted)
	}
	if len(doer.requests) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(doer.requests))
	}
	if len(doer.requests[0].body) != 2 || len(doer.requests[2].body) != 1 {
		t.Fatalf("unexpected batch sizes: %d, %d, %d",
			len(doer.requests[0].body), len(doer.requests[1].body), len(doer.requests[2].body))
	}

	// Zero batch size posts everything at once.
	doer.requests = nil
	posted, err = client.PostAll(context.Background(), sampleRecords(3), 0, indexer.PostOptions{})
	if err != nil || posted != 3 {
		t.Fatalf("post all: posted=%d err=%v", posted, err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(doer.requests))
	}
}

func TestPostAllStopsOnError(t *testing.T) {
	doer := &fakeDoer{err: errors.New("connection refused")}
	client := indexer.New("http://solr:8983/corpus", doer, logging.NewNop())
	posted, err := client.PostAll(context.Background(), sampleRecords(4), 2, indexer.PostOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if posted != 0 {
		t.Fatalf("expected 0 posted, got %d", posted)
	}
}

func TestFromDocument(t *testing.T) {
	doc := document.New("SIN_NW_1", "sin")
	for _, seg := range [][2]string{{"segment-0", "kumar giya"}, {"segment-1", "mama yami"}} {
		if err := doc.AddSegment(seg[0], seg[1]); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	records := indexer.FromDocument(doc)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ID != "SIN_NW_1/segment-0" || first.DocID != "SIN_NW_1" ||
		first.SegID != "segment-0" || first.Lang != "sin" || first.Text != "kumar giya" {
		t.Fatalf("unexpected record: %+v", first)
	}
}
