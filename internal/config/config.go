package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/ghodss/yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

const (
	DefaultAPIURL    = "https://api.github.com"
	DefaultGitURL    = "https://github.com"
	DefaultUserAgent = "ghrs"
)

type GhrsConfig struct {
	APIURL    string       `json:"api_url" validate:"required,url"` // https://api.github.com
	GitURL    string       `json:"git_url" validate:"required,url"` // https://github.com
	UserAgent string       `json:"user_agent" validate:"required"`  // ghrs
	Timeout   int          `json:"timeout" validate:"min=0"`        // seconds, 0 keeps the transport default
	Update    UpdateConfig `json:"update"`
}

// UpdateConfig is only read by the upgrade command, which validates it.
type UpdateConfig struct {
	Owner string `json:"owner"` // blankon
	Repo  string `json:"repo"`  // ghrs
	Asset string `json:"asset"` // ghrs-linux-amd64
}

// Default returns the configuration used when no config file is given.
func Default() GhrsConfig {
	return GhrsConfig{
		APIURL:    DefaultAPIURL,
		GitURL:    DefaultGitURL,
		UserAgent: DefaultUserAgent,
		Update: UpdateConfig{
			Owner: "blankon",
			Repo:  "ghrs",
		},
	}
}

// RequestTimeout converts Timeout to a duration.
func (c GhrsConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// UpdateAssetName is the release asset that carries this platform's binary.
func (c GhrsConfig) UpdateAssetName() string {
	if c.Update.Asset != "" {
		return c.Update.Asset
	}
	return fmt.Sprintf("ghrs-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// LoadConfig load ghrs config from path. An empty path means defaults; a
// given path must be readable.
func LoadConfig(path string) (config GhrsConfig, err error) {
	config = Default()
	if path == "" {
		log.Println("[LoadConfig] no config file given, using defaults")
		return
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	log.Println("[LoadConfig] load config from : ", path)

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}

	validate := validator.New()
	err = validate.Struct(config)

	return
}
