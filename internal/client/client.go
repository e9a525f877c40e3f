// Package client talks to a running leitner server, so CLI turns share the
// server's serialized scheduler instead of opening the profile directly.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lazypower/leitner/internal/leitner"
	"github.com/lazypower/leitner/internal/store"
)

const httpTimeout = 5 * time.Second

// Client talks to the leitner HTTP API.
type Client struct {
	http      *http.Client
	serverURL string
}

// New creates a client for the server at serverURL, e.g. http://127.0.0.1:37780.
func New(serverURL string) *Client {
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		serverURL: serverURL,
	}
}

// NextResult is the server's answer to a next-card request.
type NextResult struct {
	Selection leitner.Selection `json:"selection"`
	Card      *store.Card       `json:"card"`
}

// AnswerResult is the server's answer to a grading.
type AnswerResult struct {
	Transition leitner.Transition `json:"transition"`
	NextDue    *time.Time         `json:"next_due"`
}

// Healthy checks if the server is reachable.
func (c *Client) Healthy() bool {
	resp, err := c.http.Get(c.serverURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// NextRequest selects the candidates for a next-card request. Candidates
// wins over the category filter when set.
type NextRequest struct {
	MainCategory string           `json:"main_category"`
	SubCategory  string           `json:"sub_category"`
	Candidates   []leitner.CardID `json:"candidates,omitempty"`
	// Override lifts the daily new-card cap for this request only.
	Override bool `json:"override,omitempty"`
}

// Next asks the server for the next card.
func (c *Client) Next(req NextRequest) (*NextResult, error) {

	var res NextResult
	if err := c.post("/api/next", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Answer grades a card.
func (c *Client) Answer(id leitner.CardID, outcome leitner.Outcome) (*AnswerResult, error) {
	req := struct {
		Outcome leitner.Outcome `json:"outcome"`
	}{outcome}

	var res AnswerResult
	if err := c.post("/api/cards/"+url.PathEscape(id.String())+"/answer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ConfirmOverride lifts the daily new-card limit until the server restarts.
func (c *Client) ConfirmOverride() error {
	return c.post("/api/override", nil, nil)
}

// Stats returns profile stats, restricted to a category when mainCategory
// is set.
func (c *Client) Stats(mainCategory, subCategory string) (leitner.Stats, error) {
	q := url.Values{}
	if mainCategory != "" {
		q.Set("main", mainCategory)
		q.Set("sub", subCategory)
	}
	path := "/api/stats"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var st leitner.Stats
	err := c.get(path, &st)
	return st, err
}

func (c *Client) post(path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	resp, err := c.http.Post(c.serverURL+path, "application/json", body)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	return decode("POST", path, resp, out)
}

func (c *Client) get(path string, out any) error {
	resp, err := c.http.Get(c.serverURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	return decode("GET", path, resp, out)
}

func decode(method, path string, resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
