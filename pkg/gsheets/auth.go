package gsheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

const tokenEndpoint = "https://oauth2.googleapis.com/token"

// ServiceAccount holds Google service-account credentials. PrivateKey is
// the PEM-encoded RSA key; environment-sourced keys often carry literal
// "\n" sequences, which are normalized here.
type ServiceAccount struct {
	Email      string
	PrivateKey string
}

// TokenSource provides OAuth2 access tokens for API requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token. Intended for tests.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

// jwtTokenSource implements the service-account JWT bearer flow: sign a
// short-lived assertion with the account's RSA key, exchange it for an
// access token, and cache the token until shortly before expiry.
type jwtTokenSource struct {
	creds    ServiceAccount
	scope    string
	endpoint string
	http     *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

func newJWTTokenSource(creds ServiceAccount, scope string, hc *http.Client) *jwtTokenSource {
	return &jwtTokenSource{
		creds:    creds,
		scope:    scope,
		endpoint: tokenEndpoint,
		http:     hc,
	}
}

func (ts *jwtTokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Now().Before(ts.expires) {
		return ts.token, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "gsheets: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "gsheets: token exchange")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "gsheets: read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("gsheets: token exchange status %d: %s", resp.StatusCode, string(body))
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", eris.Wrap(err, "gsheets: unmarshal token response")
	}
	if tr.AccessToken == "" {
		return "", eris.New("gsheets: token response missing access_token")
	}

	ts.token = tr.AccessToken
	// Refresh a minute early so in-flight requests never carry a token
	// that expires mid-request.
	ts.expires = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - time.Minute)
	return ts.token, nil
}

func (ts *jwtTokenSource) signAssertion() (string, error) {
	pem := strings.ReplaceAll(ts.creds.PrivateKey, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return "", eris.Wrap(err, "gsheets: parse private key")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   ts.creds.Email,
		"scope": ts.scope,
		"aud":   tokenEndpoint,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", eris.Wrap(err, "gsheets: sign assertion")
	}
	return assertion, nil
}
