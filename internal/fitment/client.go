package fitment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/partline/auto-parts-backend/internal/vin"
)

var (
	ErrNoQuery = errors.New("no fitment query issued yet")
	// ErrSuperseded reports that a newer query replaced this one while it was
	// in flight; its response was discarded.
	ErrSuperseded = errors.New("query superseded by a newer one")
)

// State tracks the client's query lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client queries the fitment endpoint for a vehicle and holds the per-category
// paginated results. Overlapping queries follow last-write-wins: issuing a new
// query cancels the in-flight one, and a slow response from a superseded query
// never overwrites newer state.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	state   State
	vehicle vin.Vehicle
	results Results
	errMsg  string
	gen     uint64
	cancel  context.CancelFunc
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, state: StateIdle}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Results returns the current per-category pages; nil until a query succeeds.
func (c *Client) Results() Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.results == nil {
		return nil
	}
	out := make(Results, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// ErrMessage returns the user-facing message of the last failed query.
func (c *Client) ErrMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Query fetches fitment results for the vehicle. A concurrent newer Query
// supersedes this one; the superseded call returns ErrSuperseded and leaves
// state untouched.
func (c *Client) Query(ctx context.Context, vehicle vin.Vehicle) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	qctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.vehicle = vehicle
	c.mu.Unlock()
	defer cancel()

	results, err := c.fetch(qctx, vehicle, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateError
		c.errMsg = "Failed to fetch fitment results"
		return err
	}
	c.state = StateSuccess
	c.results = results
	c.errMsg = ""
	return nil
}

// FetchPage loads one category's page, leaving every other category's
// currently-loaded page untouched.
func (c *Client) FetchPage(ctx context.Context, category string, page int) error {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return ErrNoQuery
	}
	gen := c.gen
	vehicle := c.vehicle
	c.mu.Unlock()

	param := fmt.Sprintf("page_%s=%d", CategorySlug(category), page)
	results, err := c.fetch(ctx, vehicle, &param)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if pg, ok := results[category]; ok {
		if c.results == nil {
			c.results = make(Results)
		}
		c.results[category] = pg
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, vehicle vin.Vehicle, pageParam *string) (Results, error) {
	body, err := json.Marshal(vehicle)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/parts/fitment/"
	if pageParam != nil {
		url += "?" + *pageParam
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fitment query returned status %d", res.StatusCode)
	}

	var results Results
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, err
	}
	return results, nil
}
