package stash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUpstream marks any failure to obtain a coherent response from
// Stash. Callers match it with errors.Is and treat every variant the
// same way: the scrape failed.
var ErrUpstream = errors.New("stash upstream error")

// Client executes GraphQL queries against a Stash server.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a Client for the given GraphQL endpoint. An ApiKey
// header carrying apiKey is added to every request; pass an empty key
// to skip authentication. timeout bounds each round trip.
func New(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
			Transport: &apiKeyRoundTripper{
				apiKey: apiKey,
				next:   http.DefaultTransport,
			},
		},
	}
}

// apiKeyRoundTripper injects the Stash ApiKey header. The request is
// cloned before mutation, as required by the RoundTripper contract.
type apiKeyRoundTripper struct {
	apiKey string
	next   http.RoundTripper
}

func (rt *apiKeyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.apiKey != "" {
		req = req.Clone(req.Context())
		req.Header.Set("ApiKey", rt.apiKey)
	}
	return rt.next.RoundTrip(req)
}

// Snapshot fetches the library statistics and the full scene listing
// concurrently and returns them as one coherent view. If either query
// fails the whole snapshot fails.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var statsEnv struct {
		Stats LibraryStats `json:"stats"`
	}
	var scenesEnv struct {
		FindScenes struct {
			Scenes []Scene `json:"scenes"`
		} `json:"findScenes"`
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.runQuery(ctx, libraryStatsQuery, &statsEnv)
	})
	g.Go(func() error {
		return c.runQuery(ctx, scenePlayHistoryQuery, &scenesEnv)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Stats:  statsEnv.Stats,
		Scenes: scenesEnv.FindScenes.Scenes,
	}, nil
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// runQuery posts a GraphQL query and decodes the data payload into
// out. Every failure mode wraps ErrUpstream.
func (c *Client) runQuery(ctx context.Context, query string, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return fmt.Errorf("%w: encoding query: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: connecting to %s: %v", ErrUpstream, c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: unexpected status %d from %s: %s",
			ErrUpstream, resp.StatusCode, c.endpoint, strings.TrimSpace(string(snippet)))
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: invalid JSON from %s: %v", ErrUpstream, c.endpoint, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: graphql errors: %s", ErrUpstream, strings.Join(msgs, "; "))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: response missing data field", ErrUpstream)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: unexpected response shape: %v", ErrUpstream, err)
	}
	return nil
}
