package translate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kiyosudo/go-bing-translator/translator"
)

// Config holds all configuration related to the translate service.
type Config struct {
	DetectLangs []string             `yaml:"detect_langs"`
	SourceLang  SourceLanguageConfig `yaml:"source_lang"`
	TargetLang  string               `yaml:"target_lang"`
	RateLimit   RateLimitConfig      `yaml:"rate_limit"`
	Translator  translator.Config    `yaml:"translator"`
}

// RateLimitConfig defines the parameters for the rate limiter.
type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	BucketSize int     `yaml:"bucket_size"`
	RefillTPS  float64 `yaml:"refill_token_per_sec"`
}

// SourceLanguageConfig defines parameters for validating detected source languages.
type SourceLanguageConfig struct {
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	Langs               []string `yaml:"langs"`
}

// NewConfig creates a new Config with default empty slices and zero values.
func NewConfig() (c Config) {
	return Config{
		DetectLangs: make([]string, 0),
		SourceLang: SourceLanguageConfig{
			ConfidenceThreshold: 0,
			Langs:               make([]string, 0),
		},
	}
}

func LoadConfig(configFile string) (cfg *Config, err error) {
	c := NewConfig()
	cfg = &c

	yamlFile, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("config file '%s' not found", configFile)
			return
		}
		return nil, fmt.Errorf("read config file '%s' failed: %w", configFile, err)
	}

	err = yaml.Unmarshal(yamlFile, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse '%s' failed: %w", configFile, err)
	}
	return
}
