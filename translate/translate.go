package translate

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kiyosudo/go-bing-translator/metrics"
	"github.com/kiyosudo/go-bing-translator/translator"
)

const (
	translationStatePending    = "pending"
	translationStateProcessing = "processing"
	translationStateSuccess    = "success"
	translationStateFailed     = "failed"

	characterDirectionSource     = "source"
	characterDirectionTranslated = "translated"

	translationLimiterWaitSeconds = 30
)

var allTranslationTaskStates = []string{
	translationStatePending,
	translationStateProcessing,
	translationStateSuccess,
	translationStateFailed,
}

type TranslateRequest struct {
	// ISO 639-1 code of the source language. Detected when empty.
	From    string
	Texts   []string
	TraceId string
}

type TranslateResponse struct {
	From       string
	Confidence float64
	Items      []translator.Translation
}

// BatchTranslator is the provider client the service drives.
type BatchTranslator interface {
	TranslateArray(ctx context.Context, from, to string, texts []string) ([]translator.Translation, error)
}

// TranslateService provides common functionality above the provider client,
// primarily language detection and rate limiting.
type TranslateService struct {
	sourceLangConf  SourceLanguageConfig
	targetLang      string
	detectorBuilder lingua.LanguageDetectorBuilder
	detector        lingua.LanguageDetector
	client          BatchTranslator
	limiter         *rate.Limiter
}

func NewTranslateService(conf Config) (ts *TranslateService, err error) {
	ts = &TranslateService{}

	if len(conf.DetectLangs) == 0 {
		err = fmt.Errorf("no detect languages configured")
		return
	}

	if len(conf.SourceLang.Langs) == 0 {
		err = fmt.Errorf("no source languages configured")
		return
	}

	if conf.SourceLang.ConfidenceThreshold <= 0 || conf.SourceLang.ConfidenceThreshold > 1 {
		err = fmt.Errorf("confidence threshold must in 0-1")
		return
	}
	ts.sourceLangConf = conf.SourceLang

	if conf.TargetLang == "" {
		err = fmt.Errorf("no target language configured")
		return
	}
	ts.targetLang = conf.TargetLang

	if conf.RateLimit.Enabled {
		if conf.RateLimit.RefillTPS <= 0.0 {
			err = fmt.Errorf("translator limiter refill rate must be positive")
			return
		}

		if conf.RateLimit.BucketSize <= 0 {
			err = fmt.Errorf("translator limiter bucket size must be positive")
			return
		}

		ts.limiter = rate.NewLimiter(
			rate.Limit(conf.RateLimit.RefillTPS),
			conf.RateLimit.BucketSize,
		)
		logrus.Infof(
			"rate limiter refill: %.2f tokens/s, bucket size: %d",
			conf.RateLimit.RefillTPS,
			conf.RateLimit.BucketSize,
		)
	}

	allLanguages := map[string]lingua.Language{}
	availableLangs := []lingua.Language{}
	for _, l := range lingua.AllLanguages() {
		allLanguages[l.IsoCode639_1().String()] = l
	}

	for _, code := range conf.DetectLangs {
		if l, ok := allLanguages[code]; ok {
			logrus.Infof("found detect language: %s", code)
			availableLangs = append(availableLangs, l)
		} else {
			err = fmt.Errorf("unsupported language: %s", code)
			return
		}
	}

	ts.detectorBuilder = lingua.NewLanguageDetectorBuilder().
		FromLanguages(availableLangs...)
	ts.detector = ts.detectorBuilder.Build()

	for _, state := range allTranslationTaskStates {
		metrics.MetricTranslationTasks.WithLabelValues(state).Add(0.0)
	}

	ts.client, err = translator.NewWithOptions(translator.Options{
		Config:              conf.Translator,
		TokenRequestsMetric: metrics.MetricTokenRequests,
	})
	return
}

// DetectLang attempts to detect the language of the given text.
// It returns the detected language (ISO 639-1 code), the confidence score,
// and an error if the detected language is not supported or confidence is too low.
func (ts *TranslateService) DetectLang(text string) (lang string, confidence float64, err error) {
	for _, cv := range ts.detector.ComputeLanguageConfidenceValues(text) {
		l := cv.Language().IsoCode639_1().String()
		c := cv.Value()
		if c > confidence {
			lang = l
			confidence = c
		}
	}

	if !slices.Contains(ts.sourceLangConf.Langs, lang) ||
		confidence < ts.sourceLangConf.ConfidenceThreshold {
		err = fmt.Errorf("supported language not detected")
	}

	return
}

// Translate runs a single batch through the provider. An empty Items slice
// is a valid outcome, not an error.
func (ts *TranslateService) Translate(req TranslateRequest) (resp *TranslateResponse, err error) {
	logger := logrus.WithField("trace_id", req.TraceId)

	from := req.From
	confidence := 0.0
	if from == "" {
		from, confidence, err = ts.DetectLang(strings.Join(req.Texts, "\n"))
		if err != nil {
			return
		}
		logger.Debugf("detected source language: %s (%.2f)", from, confidence)
	}

	ctx, cancel := context.WithTimeout(context.Background(), translationLimiterWaitSeconds*time.Second)
	defer cancel()

	logger.Trace("wating for limiter")
	metrics.MetricTranslationTasks.WithLabelValues(translationStatePending).Inc()
	err = ts.wait(ctx)
	metrics.MetricTranslationTasks.WithLabelValues(translationStatePending).Dec()
	if err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	metrics.MetricTranslationTasks.WithLabelValues(translationStateProcessing).Inc()
	defer metrics.MetricTranslationTasks.WithLabelValues(translationStateProcessing).Dec()

	logger.Debug("wating for translate response")
	items, err := ts.client.TranslateArray(ctx, from, ts.targetLang, req.Texts)
	if err != nil {
		metrics.MetricTranslationTasks.WithLabelValues(translationStateFailed).Inc()
		return
	}
	metrics.MetricTranslationTasks.WithLabelValues(translationStateSuccess).Inc()

	for _, text := range req.Texts {
		metrics.MetricTranslationCharacters.WithLabelValues(
			characterDirectionSource).Add(float64(utf8.RuneCountInString(text)))
	}
	for _, item := range items {
		metrics.MetricTranslationCharacters.WithLabelValues(
			characterDirectionTranslated).Add(float64(utf8.RuneCountInString(item.Text)))
	}

	resp = &TranslateResponse{
		From:       from,
		Confidence: confidence,
		Items:      items,
	}
	return
}

func (ts *TranslateService) wait(ctx context.Context) (err error) {
	if ts.limiter != nil {
		err = ts.limiter.Wait(ctx)
	}
	return
}
