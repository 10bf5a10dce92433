package tables

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Assigner resolves an available table for a reservation slot. The core only
// consumes the returned table number.
type Assigner interface {
	AssignTable(ctx context.Context, date, timeSlot string, partySize int) (int, error)
}

const maxResponseSizeBytes = 1 << 20

type Config struct {
	URL     string        `split_words:"true" required:"true"`
	Token   string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Client talks to the table-availability service over REST.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("table service url is required")
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	return client, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

type assignRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
}

type assignResponse struct {
	TableNumber int    `json:"table_number"`
	Error       string `json:"error"`
}

func (c *Client) AssignTable(ctx context.Context, date, timeSlot string, partySize int) (int, error) {
	body, err := json.Marshal(assignRequest{
		Date:      date,
		Time:      timeSlot,
		PartySize: partySize,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal assign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tables/assign", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build assign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute assign request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return 0, fmt.Errorf("read assign response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("table service http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed assignResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, fmt.Errorf("decode assign response: %w", err)
	}
	if parsed.Error != "" {
		return 0, errors.New(parsed.Error)
	}
	if parsed.TableNumber <= 0 {
		return 0, errors.New("table service returned no table")
	}
	return parsed.TableNumber, nil
}

// Static always assigns the same table. It stands in for the availability
// service until one exists; the upstream system hardcoded table 3 the same way.
type Static struct {
	Table int
}

var _ Assigner = Static{}

func (s Static) AssignTable(context.Context, string, string, int) (int, error) {
	table := s.Table
	if table <= 0 {
		table = 3
	}
	return table, nil
}
