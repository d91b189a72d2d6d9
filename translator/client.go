package translator

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// BingTranslator implements the translation logic over the Microsoft
// Translator V2 HTTP API. Credentials are fixed for the lifetime of the
// client; a bearer token is fetched per call.
type BingTranslator struct {
	clientID     string
	clientSecret string
	token        string

	authEndpoint string
	apiEndpoint  string

	httpClient *http.Client
	logger     *logrus.Entry

	// Metrics
	tokenRequestsMetric *prometheus.CounterVec
}

type Options struct {
	Config Config

	// Metrics
	TokenRequestsMetric *prometheus.CounterVec
}

// New creates and initializes a new BingTranslator.
// It validates the provided Config and configures the HTTP client timeout.
// Returns an error if any critical configuration is missing.
func New(conf Config) (*BingTranslator, error) {
	return NewWithOptions(Options{Config: conf})
}

func NewWithOptions(opts Options) (t *BingTranslator, err error) {
	conf := opts.Config
	if err = conf.CheckAndMergeDefaults(); err != nil {
		return
	}

	t = &BingTranslator{
		clientID:     conf.ClientID,
		clientSecret: conf.ClientSecret,
		authEndpoint: conf.AuthEndpoint,
		apiEndpoint:  conf.APIEndpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(conf.Timeout) * time.Second,
		},
		tokenRequestsMetric: opts.TokenRequestsMetric,
	}
	t.logger = logrus.WithField("client_id", t.clientID)

	t.logger.Infof("initialized bing translator, api url: %s, timeout: %ds",
		t.apiEndpoint, conf.Timeout)
	return
}

// Translate translates a single string. It delegates to TranslateArray and
// returns an empty string without error when the batch yields no result.
func (t *BingTranslator) Translate(ctx context.Context, from, to, text string) (translated string, err error) {
	results, err := t.TranslateArray(ctx, from, to, []string{text})
	if err != nil {
		return
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].Text, nil
}

// TranslateArray translates an ordered batch of strings. The result is
// index-aligned with texts. An unexpected response body yields a nil result
// and a nil error; a non-2xx status yields a *RequestError.
func (t *BingTranslator) TranslateArray(ctx context.Context, from, to string, texts []string) (results []Translation, err error) {
	token, err := t.getAccessToken(ctx)
	if err != nil {
		return
	}

	envelope, err := xml.Marshal(newTranslateArrayRequest(from, to, texts))
	if err != nil {
		return nil, fmt.Errorf("encode request envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.apiEndpoint+"/TranslateArray2", bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("Authorization", token)
	req.ContentLength = int64(len(envelope))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Mask sensitive data
		req.Header.Set("Authorization", "********")
		return nil, &RequestError{
			StatusLine: resp.Status,
			Request:    req,
			Response:   resp,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translate response: %w", err)
	}

	var parsed arrayOfTranslateArrayResponse
	if err = xml.Unmarshal(body, &parsed); err != nil {
		// An unexpected body is an empty result, not an error.
		t.logger.Warnf("unexpected translate response body: %v", err)
		return nil, nil
	}

	results = make([]Translation, 0, len(parsed.Responses))
	for _, r := range parsed.Responses {
		results = append(results, Translation{
			Text:      r.TranslatedText,
			Alignment: r.Alignment,
		})
	}
	return
}

// Detect asks the provider to identify the language of the given text.
func (t *BingTranslator) Detect(ctx context.Context, text string) (lang string, err error) {
	body, err := t.get(ctx, "/Detect?text="+url.QueryEscape(text))
	if err != nil {
		return
	}

	var parsed detectResponse
	if err = xml.Unmarshal(body, &parsed); err != nil {
		t.logger.Warnf("unexpected detect response body: %v", err)
		return "", nil
	}
	return parsed.Value, nil
}

// Languages lists the language codes the provider can translate between.
func (t *BingTranslator) Languages(ctx context.Context) (codes []string, err error) {
	body, err := t.get(ctx, "/GetLanguagesForTranslate")
	if err != nil {
		return
	}

	var parsed languagesResponse
	if err = xml.Unmarshal(body, &parsed); err != nil {
		t.logger.Warnf("unexpected languages response body: %v", err)
		return nil, nil
	}
	return parsed.Codes, nil
}

func (t *BingTranslator) get(ctx context.Context, path string) (body []byte, err error) {
	token, err := t.getAccessToken(ctx)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.apiEndpoint+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", token)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Mask sensitive data
		req.Header.Set("Authorization", "********")
		return nil, &RequestError{
			StatusLine: resp.Status,
			Request:    req,
			Response:   resp,
		}
	}

	return io.ReadAll(resp.Body)
}
