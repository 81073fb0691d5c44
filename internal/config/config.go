package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type sonarqubeConfig struct {
	URL           string   `koanf:"url"`
	Token         string   `koanf:"token"`
	ScannerBinary string   `koanf:"scanner_binary"`
	ExtraArgs     []string `koanf:"extra_args"`
}

type syncConfig struct {
	BaseDir  string        `koanf:"base_dir"`
	Interval time.Duration `koanf:"interval"`
	Parallel bool          `koanf:"parallel"`
}

type badgesConfig struct {
	OutputFile string `koanf:"output_file"`
}

type repositoryConfig struct {
	Name     string   `koanf:"name"`
	URL      string   `koanf:"url"`
	Branches []string `koanf:"branches"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage   storageConfig   `koanf:"storage"`
	SonarQube sonarqubeConfig `koanf:"sonarqube"`
	Sync      syncConfig      `koanf:"sync"`
	Badges    badgesConfig    `koanf:"badges"`

	Repositories []repositoryConfig `koanf:"repositories"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		SonarQube: sonarqubeConfig{
			URL:           "http://localhost:9000",
			ScannerBinary: "sonar-scanner",
		},

		Sync: syncConfig{
			BaseDir:  "./repos",
			Interval: time.Hour,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	// The scanner token is too sensitive for config files in most
	// setups, allow the environment to override it.
	if token := os.Getenv("SONARQUBE_TOKEN"); token != "" {
		cfg.SonarQube.Token = token
	}

	return cfg, nil
}
