// Package liveclient talks to the game's local live-client data API, which
// is only reachable while a match is loaded.
package liveclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/glory-app/glory/internal/player"
	"github.com/glory-app/glory/internal/session"
)

const (
	DefaultBaseURL = "https://127.0.0.1:2999"
	DefaultTimeout = 500 * time.Millisecond

	EventDataPath    = "/liveclientdata/eventdata"
	PlayerScoresPath = "/liveclientdata/playerscores"

	gameStartEvent = "GameStart"
	maxBodyBytes   = 1 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// InsecureSkipVerify disables certificate checks. The game serves the
	// API with a self-signed certificate.
	InsecureSkipVerify bool
}

// Client implements session.Probe and player.Source over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // self-signed localhost endpoint
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		client:  &http.Client{Timeout: opts.Timeout, Transport: transport},
	}
}

// Active reports whether the event feed starts with a GameStart event. An
// empty feed means the match is still loading.
func (c *Client) Active(ctx context.Context) (bool, error) {
	body, err := c.get(ctx, EventDataPath, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", session.ErrProbeUnavailable, err)
	}
	if !gjson.ValidBytes(body) {
		return false, fmt.Errorf("%w: invalid JSON from %s", session.ErrProbeUnavailable, EventDataPath)
	}
	events := gjson.GetBytes(body, "Events")
	if !events.IsArray() {
		return false, fmt.Errorf("%w: no Events array in %s", session.ErrProbeUnavailable, EventDataPath)
	}
	return gjson.GetBytes(body, "Events.0.EventName").String() == gameStartEvent, nil
}

// Fetch returns the scoreboard counters for playerName.
func (c *Client) Fetch(ctx context.Context, playerName string) (player.Snapshot, error) {
	body, err := c.get(ctx, PlayerScoresPath, url.Values{"summonerName": {playerName}})
	if err != nil {
		return player.Snapshot{}, fmt.Errorf("%w: %v", player.ErrUnavailable, err)
	}
	snap, err := ParseScores(body)
	if err != nil {
		return player.Snapshot{}, fmt.Errorf("%w: %v", player.ErrUnavailable, err)
	}
	return snap, nil
}

var (
	errInvalidJSON  = errors.New("invalid JSON")
	errMissingField = errors.New("missing")
)

// ParseScores extracts a snapshot from a playerscores payload. All four
// counters must be present and coercible to non-negative integers.
func ParseScores(body []byte) (player.Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return player.Snapshot{}, errInvalidJSON
	}
	var snap player.Snapshot
	fields := []struct {
		key string
		dst *int
	}{
		{"kills", &snap.Kills},
		{"deaths", &snap.Deaths},
		{"assists", &snap.Assists},
		{"creepScore", &snap.CreepScore},
	}
	for _, f := range fields {
		n, err := counterValue(gjson.GetBytes(body, f.key))
		if err != nil {
			return player.Snapshot{}, fmt.Errorf("field %q: %w", f.key, err)
		}
		*f.dst = n
	}
	return snap, nil
}

func counterValue(r gjson.Result) (int, error) {
	if !r.Exists() {
		return 0, errMissingField
	}
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Num
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", r.Str)
		}
		v = n
	default:
		return 0, fmt.Errorf("unexpected type %s", r.Type)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("out of range: %v", v)
	}
	return int(v), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
