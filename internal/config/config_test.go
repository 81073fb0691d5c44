package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SONARQUBE_TOKEN", "")

	cfg, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTP.Address != "127.0.0.1:3000" {
		t.Errorf("unexpected address: %s", cfg.HTTP.Address)
	}
	if cfg.Sync.BaseDir != "./repos" {
		t.Errorf("unexpected base dir: %s", cfg.Sync.BaseDir)
	}
	if cfg.Sync.Interval != time.Hour {
		t.Errorf("unexpected interval: %s", cfg.Sync.Interval)
	}
	if cfg.SonarQube.ScannerBinary != "sonar-scanner" {
		t.Errorf("unexpected scanner binary: %s", cfg.SonarQube.ScannerBinary)
	}
}

func TestNew_YAML(t *testing.T) {
	yaml := `
sonarqube:
  url: https://sonar.example.com
  token: file-token
sync:
  base_dir: /srv/repos
  interval: 30m
  parallel: true
badges:
  output_file: /srv/www/badges.html
repositories:
  - name: billing
    url: https://example.com/billing.git
    branches:
      - main
      - dev
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SONARQUBE_TOKEN", "")

	cfg, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SonarQube.URL != "https://sonar.example.com" {
		t.Errorf("unexpected url: %s", cfg.SonarQube.URL)
	}
	if cfg.SonarQube.Token != "file-token" {
		t.Errorf("unexpected token")
	}
	if cfg.Sync.BaseDir != "/srv/repos" || cfg.Sync.Interval != 30*time.Minute || !cfg.Sync.Parallel {
		t.Errorf("unexpected sync config: %+v", cfg.Sync)
	}
	if cfg.Badges.OutputFile != "/srv/www/badges.html" {
		t.Errorf("unexpected badges config: %+v", cfg.Badges)
	}
	if len(cfg.Repositories) != 1 || cfg.Repositories[0].Name != "billing" || len(cfg.Repositories[0].Branches) != 2 {
		t.Errorf("unexpected repositories: %+v", cfg.Repositories)
	}
}

func TestNew_TokenFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SONARQUBE_TOKEN", "env-token")

	cfg, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SonarQube.Token != "env-token" {
		t.Errorf("expected environment token override")
	}
}
