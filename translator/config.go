package translator

import "fmt"

const (
	defaultAuthEndpoint = "https://datamarket.accesscontrol.windows.net/v2/OAuth2-13"
	defaultAPIEndpoint  = "http://api.microsofttranslator.com/V2/Http.svc"

	translatorScope            = "http://api.microsofttranslator.com"
	grantTypeClientCredentials = "client_credentials"

	defaultTimeoutSeconds = 30
)

// Config holds credentials and transport settings for a translator client.
type Config struct {
	// Required
	ClientID string `yaml:"client_id"`

	// Required
	ClientSecret string `yaml:"client_secret"`

	// Postive, seconds. Applied to every HTTP request the client issues.
	Timeout int64 `yaml:"timeout"`

	// Optional
	AuthEndpoint string `yaml:"auth_endpoint"`

	// Optional
	APIEndpoint string `yaml:"api_endpoint"`
}

// CheckAndMergeDefaults validates required fields and fills unset optional
// ones with the datamarket defaults.
func (c *Config) CheckAndMergeDefaults() (err error) {
	if c.ClientID == "" {
		err = fmt.Errorf("translator client id is required")
		return
	}

	if c.ClientSecret == "" {
		err = fmt.Errorf("translator client secret is required")
		return
	}

	if c.Timeout <= 0 {
		c.Timeout = defaultTimeoutSeconds
	}

	if c.AuthEndpoint == "" {
		c.AuthEndpoint = defaultAuthEndpoint
	}

	if c.APIEndpoint == "" {
		c.APIEndpoint = defaultAPIEndpoint
	}
	return
}
