package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyosudo/go-bing-translator/translator"
)

func newTestConfig() Config {
	c := NewConfig()
	c.DetectLangs = []string{"EN", "DE"}
	c.SourceLang = SourceLanguageConfig{
		ConfidenceThreshold: 0.5,
		Langs:               []string{"EN"},
	}
	c.TargetLang = "ru"
	c.Translator = translator.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Timeout:      5,
	}
	return c
}

type stubClient struct {
	items []translator.Translation
	err   error

	gotFrom  string
	gotTo    string
	gotTexts []string
	calls    int
}

func (s *stubClient) TranslateArray(_ context.Context, from, to string, texts []string) ([]translator.Translation, error) {
	s.calls++
	s.gotFrom = from
	s.gotTo = to
	s.gotTexts = texts
	return s.items, s.err
}

func TestNewTranslateServiceConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no detect languages",
			mutate:  func(c *Config) { c.DetectLangs = nil },
			wantErr: "no detect languages configured",
		},
		{
			name:    "no source languages",
			mutate:  func(c *Config) { c.SourceLang.Langs = nil },
			wantErr: "no source languages configured",
		},
		{
			name:    "zero confidence threshold",
			mutate:  func(c *Config) { c.SourceLang.ConfidenceThreshold = 0 },
			wantErr: "confidence threshold",
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.SourceLang.ConfidenceThreshold = 1.5 },
			wantErr: "confidence threshold",
		},
		{
			name:    "no target language",
			mutate:  func(c *Config) { c.TargetLang = "" },
			wantErr: "no target language configured",
		},
		{
			name:    "unknown detect language",
			mutate:  func(c *Config) { c.DetectLangs = []string{"XX"} },
			wantErr: "unsupported language: XX",
		},
		{
			name: "bad limiter refill rate",
			mutate: func(c *Config) {
				c.RateLimit = RateLimitConfig{Enabled: true, BucketSize: 1}
			},
			wantErr: "refill rate must be positive",
		},
		{
			name: "bad limiter bucket size",
			mutate: func(c *Config) {
				c.RateLimit = RateLimitConfig{Enabled: true, RefillTPS: 1.0}
			},
			wantErr: "bucket size must be positive",
		},
		{
			name:    "missing translator credentials",
			mutate:  func(c *Config) { c.Translator.ClientID = "" },
			wantErr: "client id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := newTestConfig()
			tt.mutate(&conf)

			_, err := NewTranslateService(conf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDetectLang(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	lang, confidence, err := ts.DetectLang("the quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	assert.Equal(t, "EN", lang)
	assert.Greater(t, confidence, 0.5)
}

func TestDetectLangRejectsUnsupportedSource(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	// Detected as German, which is not in the source language set.
	_, _, err = ts.DetectLang("Ich wohne in Deutschland und spreche jeden Tag Deutsch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported language not detected")
}

func TestTranslateDetectsSourceLanguage(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	stub := &stubClient{items: []translator.Translation{
		{Text: "привет", Alignment: "0:4-0:5"},
	}}
	ts.client = stub

	resp, err := ts.Translate(TranslateRequest{
		Texts:   []string{"hello everyone, how are you doing today"},
		TraceId: "t1",
	})
	require.NoError(t, err)

	assert.Equal(t, "EN", stub.gotFrom)
	assert.Equal(t, "ru", stub.gotTo)
	assert.Equal(t, "EN", resp.From)
	assert.Greater(t, resp.Confidence, 0.5)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "привет", resp.Items[0].Text)
}

func TestTranslateUsesExplicitSourceLanguage(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	stub := &stubClient{items: []translator.Translation{{Text: "bonjour"}}}
	ts.client = stub

	resp, err := ts.Translate(TranslateRequest{
		From:  "fr",
		Texts: []string{"hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "fr", stub.gotFrom)
	assert.Equal(t, "fr", resp.From)
	assert.Zero(t, resp.Confidence)
	assert.Equal(t, []string{"hello"}, stub.gotTexts)
}

func TestTranslatePropagatesSoftEmptyResult(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	ts.client = &stubClient{}

	resp, err := ts.Translate(TranslateRequest{From: "en", Texts: []string{"hello"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestTranslatePropagatesClientError(t *testing.T) {
	t.Parallel()

	ts, err := NewTranslateService(newTestConfig())
	require.NoError(t, err)

	stub := &stubClient{err: &translator.RequestError{StatusLine: "503 Service Unavailable"}}
	ts.client = stub

	_, err = ts.Translate(TranslateRequest{From: "en", Texts: []string{"hello"}})
	require.Error(t, err)

	var reqErr *translator.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, stub.calls, "no retry on failure")
}
