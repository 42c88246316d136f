package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	pstrings "taxkaki/internal/platform/strings"
)

const (
	baseURLDefault = "https://sheets.googleapis.com"
	defaultTimeout = 30 * time.Second
	defaultUA      = "taxkaki"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal Sheets v4 values client
// Calls are never retried; the caller decides what a failure means
type Client struct {
	http   *http.Client
	opts   Options
	tokens *tokenSource
	log    logger.Logger
}

// NewClient creates a Client with defaults applied
func NewClient(creds *Credentials, o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := &http.Client{Timeout: o.Timeout}
	return &Client{
		http:   hc,
		opts:   o,
		tokens: &tokenSource{creds: creds, http: hc, now: time.Now},
		log:    *logger.Named("sheets"),
	}
}

type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// Get returns the values of rng, numbers unformatted and dates as displayed
func (c *Client) Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	q := url.Values{
		"valueRenderOption":    {"UNFORMATTED_VALUE"},
		"dateTimeRenderOption": {"FORMATTED_STRING"},
		"majorDimension":       {"ROWS"},
	}
	var out valueRange
	if err := c.do(ctx, http.MethodGet, c.valuesURL(spreadsheetID, rng, "")+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

// Append appends one row after the last row of the table at rng
func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, row []any) error {
	q := url.Values{
		"valueInputOption": {"RAW"},
		"insertDataOption": {"INSERT_ROWS"},
	}
	body := valueRange{Values: [][]any{row}}
	return c.do(ctx, http.MethodPost, c.valuesURL(spreadsheetID, rng, ":append")+"?"+q.Encode(), body, nil)
}

func (c *Client) valuesURL(id, rng, verb string) string {
	return c.opts.BaseURL + "/v4/spreadsheets/" + url.PathEscape(id) + "/values/" + url.PathEscape(rng) + verb
}

func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var rdr io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode sheets request")
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "sheets new request failed")
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "sheets request failed")
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("sheets http response")

	if resp.StatusCode/100 != 2 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Unavailablef("sheets unexpected status %d: %s",
			resp.StatusCode, pstrings.Truncate(string(tail), 512))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "decode sheets response")
	}
	return nil
}
