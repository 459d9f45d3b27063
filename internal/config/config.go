package config

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

type CatalogAI struct {
	ApiKey         string `env:"CATALOG_AI_API_KEY"`
	ApiUrl         string `env:"CATALOG_AI_API_URL" envDefault:"https://api.perplexity.ai/chat/completions"`
	Model          string `env:"CATALOG_AI_MODEL" envDefault:"mixtral-8x7b-instruct"`
	MaxPromptToken int    `env:"CATALOG_AI_MAX_PROMPT_TOKENS" envDefault:"2048"`
}

// Enabled is false when no api key is configured; callers then serve mock products.
func (c CatalogAI) Enabled() bool {
	return c.ApiKey != ""
}

type Firebase struct {
	Type                    string        `env:"FIREBASE_TYPE,required" json:"type"`
	ProjectId               string        `env:"FIREBASE_PROJECT_ID,required" json:"project_id"`
	PrivateKeyId            string        `env:"FIREBASE_PRIVATE_KEY_ID,required" json:"private_key_id"`
	PrivateKey              string        `env:"FIREBASE_PRIVATE_KEY,required" json:"private_key"`
	ClientEmail             string        `env:"FIREBASE_CLIENT_EMAIL,required" json:"client_email"`
	ClientId                string        `env:"FIREBASE_CLIENT_ID,required" json:"client_id"`
	AuthUri                 string        `env:"FIREBASE_AUTH_URI,required" json:"auth_uri"`
	TokenUri                string        `env:"FIREBASE_TOKEN_URI,required" json:"token_uri"`
	AuthProviderX509CertUrl string        `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL,required" json:"auth_provider_x509_cert_url"`
	ClientX509CertUrl       string        `env:"FIREBASE_CLIENT_X509_CERT_URL,required" json:"client_x509_cert_url"`
	WriteTimeoutSecond      time.Duration `env:"FIREBASE_WRITE_TIMEOUT_SECOND" json:"-"`
}

type Favorites struct {
	OperationTimeout time.Duration `env:"FAVORITES_OPERATION_TIMEOUT" envDefault:"10s"`
}

type Comparison struct {
	NoticeDuration time.Duration `env:"COMPARISON_NOTICE_DURATION" envDefault:"3s"`
}

type Recommendations struct {
	Limit int `env:"RECOMMENDATIONS_LIMIT" envDefault:"12"`
}

type Config struct {
	CatalogAI
	Firebase
	Favorites
	Comparison
	Recommendations
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadConfigOrPanic() Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}

func Load() (Config, error) {
	var config *Config = new(Config)
	if err := env.Parse(config); err != nil {
		return Config{}, err
	}

	if err := config.normalize(); err != nil {
		return Config{}, err
	}
	return *config, nil
}

func (c *Config) normalize() error {

	decodedBytes, err := base64.StdEncoding.DecodeString(c.Firebase.PrivateKey)
	if err != nil {
		return err
	}
	c.Firebase.PrivateKey = string(decodedBytes)
	c.Firebase.PrivateKey = strings.ReplaceAll(c.Firebase.PrivateKey, "\\n", "\n")

	if c.WriteTimeoutSecond == 0 {
		c.WriteTimeoutSecond = time.Second * 30
	}

	if c.OperationTimeout <= 0 {
		c.OperationTimeout = time.Second * 10
	}

	if c.NoticeDuration <= 0 {
		c.NoticeDuration = time.Second * 3
	}

	if c.Recommendations.Limit <= 0 {
		c.Recommendations.Limit = 12
	}

	return nil
}
