package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	namespace = "bing_translator"
)

type MetricConfig struct {
	Listen string `yaml:"listen"`
}

var (
	// States: "pending" (waiting for rate limiter),
	//         "processing" (waiting for translation API response),
	//         "success" (translation and parsing successful),
	//         "failed" (any step in translation failed).
	MetricTranslationTasks = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "translation_tasks_total",
			Help:      "Total number of translation tasks, by state.",
		},
		[]string{"state"},
	)

	// Directions: "source" (characters sent for translation)
	// 		  "translated" (characters received back)
	MetricTranslationCharacters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_characters_total",
			Help:      "Characters processed by translation tasks.",
		},
		[]string{"direction"},
	)

	// Results: "success" (token obtained)
	//          "failure" (endpoint error or unusable token)
	MetricTokenRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_requests_total",
			Help:      "Access token exchanges against the OAuth2 endpoint.",
		},
		[]string{"result"},
	)
)

func InitMetricServer(conf MetricConfig) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logrus.Infof("Metrics server listening on %s", conf.Listen)
		if err := http.ListenAndServe(conf.Listen, nil); err != nil {
			logrus.Fatalf("Failed to start metrics server: %v", err)
		}
	}()
}
