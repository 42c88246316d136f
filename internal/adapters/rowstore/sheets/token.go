package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "taxkaki/internal/platform/errors"
	pstrings "taxkaki/internal/platform/strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

const (
	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	grantJWTBearer    = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL      = time.Hour
	refreshSkew       = time.Minute
)

// tokenSource exchanges a signed assertion for an access token and caches it until shortly before expiry
// mu guards the cache only and is never held across the exchange
type tokenSource struct {
	creds *Credentials
	http  *http.Client
	now   func() time.Time

	flight singleflight.Group

	mu      sync.Mutex
	token   string
	expires time.Time
}

func (ts *tokenSource) cached() (string, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != "" && ts.now().Add(refreshSkew).Before(ts.expires) {
		return ts.token, true
	}
	return "", false
}

// Token returns a cached token or fetches a new one
// concurrent callers share one exchange, and each stops waiting when its own ctx ends
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := ts.cached(); ok {
		return tok, nil
	}
	ch := ts.flight.DoChan("token", func() (any, error) {
		if tok, ok := ts.cached(); ok {
			return tok, nil
		}
		// the exchange outlives the caller that started it; the client timeout bounds it
		tok, ttl, err := ts.exchange(context.WithoutCancel(ctx))
		if err != nil {
			return "", err
		}
		ts.mu.Lock()
		ts.token, ts.expires = tok, ts.now().Add(ttl)
		ts.mu.Unlock()
		return tok, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "sheets token wait canceled")
	}
}

func (ts *tokenSource) assertion() (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"iss":   ts.creds.ClientEmail,
		"scope": scopeSpreadsheets,
		"aud":   ts.creds.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if ts.creds.PrivateKeyID != "" {
		t.Header["kid"] = ts.creds.PrivateKeyID
	}
	return t.SignedString(ts.creds.key)
}

func (ts *tokenSource) exchange(ctx context.Context) (string, time.Duration, error) {
	signed, err := ts.assertion()
	if err != nil {
		return "", 0, perr.Wrap(err, perr.ErrorCodeUnauthorized, "sign service account assertion")
	}
	form := url.Values{"grant_type": {grantJWTBearer}, "assertion": {signed}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.creds.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, perr.Wrap(err, perr.ErrorCodeUnknown, "sheets token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.http.Do(req)
	if err != nil {
		return "", 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "sheets token exchange failed")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK {
		return "", 0, perr.Newf(perr.ErrorCodeUnauthorized, "sheets token exchange status %d: %s",
			resp.StatusCode, pstrings.Truncate(string(body), 256))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		return "", 0, perr.Newf(perr.ErrorCodeUnauthorized, "sheets token response malformed")
	}
	ttl := time.Duration(out.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = assertionTTL
	}
	return out.AccessToken, ttl, nil
}
