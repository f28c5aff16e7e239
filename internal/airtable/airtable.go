// Package airtable is a minimal client for the Airtable REST API, scoped
// to the three operations this service needs: list, create, and delete
// records in a single table.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Client addresses one table in one base with one bearer token.
// BaseURL and HTTPClient are overridable for tests; the zero timeout on
// the default client intentionally defers to transport defaults.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	baseID string
	table  string
	token  string
}

// NewClient constructs a Client for the given base, table, and token.
func NewClient(baseID, table, token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{},
		baseID:     baseID,
		table:      table,
		token:      token,
	}
}

// Record is an Airtable row: an opaque store-owned id plus a field map.
type Record struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// StringField returns the named field as a string, or "" when the field
// is absent or not a string.
func (r Record) StringField(name string) string {
	s, _ := r.Fields[name].(string)
	return s
}

type recordList struct {
	Records []Record `json:"records"`
}

// ListRecords fetches all records of the table in store order.
// The table is assumed to fit in a single response.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(), nil)
	if err != nil {
		return nil, err
	}

	var list recordList
	if err := c.do(req, &list); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return list.Records, nil
}

// CreateRecord appends a new record with the given fields and returns the
// stored record including its generated id.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]any) (*Record, error) {
	body, err := json.Marshal(Record{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created Record
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return &created, nil
}

// DeleteRecord removes the record with the given id. Deleting an id that
// no longer exists is an error; Airtable answers 404.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.tableURL()+"/"+id, nil)
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, c.baseID, c.table)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

// do executes the request and decodes a JSON body into out when out is
// non-nil. Any non-2xx status is an error; the response body is not
// included beyond the status to avoid leaking upstream detail upward.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("airtable responded %s", resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
