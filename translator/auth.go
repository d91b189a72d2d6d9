package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	tokenRequestResultSuccess = "success"
	tokenRequestResultFailure = "failure"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// getAccessToken exchanges the client credentials for a bearer token. A
// fresh token is fetched on every translate call; the copy stored on the
// instance only reflects the most recent exchange.
func (t *BingTranslator) getAccessToken(ctx context.Context) (token string, err error) {
	defer func() {
		if t.tokenRequestsMetric == nil {
			return
		}
		if err != nil {
			t.tokenRequestsMetric.WithLabelValues(tokenRequestResultFailure).Inc()
		} else {
			t.tokenRequestsMetric.WithLabelValues(tokenRequestResultSuccess).Inc()
		}
	}()

	form := url.Values{
		"client_id":     {t.clientID},
		"client_secret": {t.clientSecret},
		"scope":         {translatorScope},
		"grant_type":    {grantTypeClientCredentials},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.authEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthError{StatusLine: resp.Status}
	}

	var tr tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &AuthError{Reason: fmt.Sprintf("decode token response: %v", err)}
	}

	if tr.AccessToken == "" {
		return "", &AuthError{Reason: "token initialization failed"}
	}

	token = "Bearer " + tr.AccessToken
	t.token = token
	t.logger.Debug("acquired access token")
	return
}
