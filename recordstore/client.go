package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/shared"
)

// ErrNotFound is returned by Find when the backend has no record with the
// given ID.
var ErrNotFound = errors.New("record not found")

// MaxBatchSize is the largest number of records the backend accepts in a
// single batched create, update or destroy call.
const MaxBatchSize = 10

// Record is the raw backend representation: an opaque ID plus string-keyed
// fields. Field values are primitives or JSON-encoded strings; typing is the
// mapper's job, not the client's.
type Record struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime time.Time      `json:"createdTime,omitempty"`
}

// ListOptions narrows a table listing.
type ListOptions struct {
	FilterFormula string
	SortField     string
	SortDesc      bool
	MaxRecords    int
}

// Client is a thin wrapper over the spreadsheet-style record API. Calls are
// single-shot: no retries, no per-call timeout beyond the HTTP client default.
type Client struct {
	baseURL string
	baseID  string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, baseID, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		baseID:  baseID,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

type recordList struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type recordBatch struct {
	Records []recordPayload `json:"records"`
}

type recordPayload struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// List fetches all records from a table, following pagination offsets.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	start := time.Now()
	var all []Record
	offset := ""

	for {
		q := url.Values{}
		if opts.FilterFormula != "" {
			q.Set("filterByFormula", opts.FilterFormula)
		}
		if opts.SortField != "" {
			q.Set("sort[0][field]", opts.SortField)
			if opts.SortDesc {
				q.Set("sort[0][direction]", "desc")
			}
		}
		if opts.MaxRecords > 0 {
			q.Set("maxRecords", fmt.Sprintf("%d", opts.MaxRecords))
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		reqURL := c.tableURL(table)
		if encoded := q.Encode(); encoded != "" {
			reqURL += "?" + encoded
		}

		var page recordList
		if err := c.do(ctx, http.MethodGet, reqURL, nil, &page); err != nil {
			c.observe(table, "list", start, err)
			return nil, err
		}

		all = append(all, page.Records...)
		if page.Offset == "" || (opts.MaxRecords > 0 && len(all) >= opts.MaxRecords) {
			break
		}
		offset = page.Offset
	}

	c.observe(table, "list", start, nil)
	return all, nil
}

// Find fetches a single record by its backend ID.
func (c *Client) Find(ctx context.Context, table, recordID string) (*Record, error) {
	start := time.Now()
	var rec Record
	err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(recordID), nil, &rec)
	c.observe(table, "find", start, err)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a single record and returns the stored representation.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	recs, err := c.CreateBatch(ctx, table, []map[string]any{fields})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("backend returned no records for create on %s", table)
	}
	return &recs[0], nil
}

// CreateBatch inserts up to MaxBatchSize records in one call.
func (c *Client) CreateBatch(ctx context.Context, table string, fieldsBatch []map[string]any) ([]Record, error) {
	if len(fieldsBatch) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds maximum of %d", len(fieldsBatch), MaxBatchSize)
	}

	start := time.Now()
	body := recordBatch{}
	for _, fields := range fieldsBatch {
		body.Records = append(body.Records, recordPayload{Fields: fields})
	}

	var resp recordList
	err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &resp)
	c.observe(table, "create", start, err)
	if err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Update patches the given fields on an existing record.
func (c *Client) Update(ctx context.Context, table, recordID string, fields map[string]any) (*Record, error) {
	start := time.Now()
	body := recordBatch{Records: []recordPayload{{ID: recordID, Fields: fields}}}

	var resp recordList
	err := c.do(ctx, http.MethodPatch, c.tableURL(table), body, &resp)
	c.observe(table, "update", start, err)
	if err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, fmt.Errorf("backend returned no records for update on %s", table)
	}
	return &resp.Records[0], nil
}

// Delete destroys up to MaxBatchSize records in one call.
func (c *Client) Delete(ctx context.Context, table string, recordIDs []string) error {
	if len(recordIDs) > MaxBatchSize {
		return fmt.Errorf("batch of %d exceeds maximum of %d", len(recordIDs), MaxBatchSize)
	}

	start := time.Now()
	q := url.Values{}
	for _, id := range recordIDs {
		q.Add("records[]", id)
	}

	err := c.do(ctx, http.MethodDelete, c.tableURL(table)+"?"+q.Encode(), nil, nil)
	c.observe(table, "delete", start, err)
	return err
}

func (c *Client) do(ctx context.Context, method, reqURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logrus.WithFields(logrus.Fields{
			"component":   "recordstore",
			"method":      method,
			"url":         reqURL,
			"status_code": resp.StatusCode,
		}).Warn("Record backend returned non-success status")
		return fmt.Errorf("record backend returned status %d: %s", resp.StatusCode, string(payload))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func (c *Client) observe(table, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	shared.BackendCallsTotal.WithLabelValues(table, operation, outcome).Inc()
	shared.BackendCallDuration.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}
