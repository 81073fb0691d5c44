package badges

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/gatescan/gatescan/internal/scanner"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const tokenRequestTimeout = 10 * time.Second

type branchView struct {
	Name       string
	Alt        string
	BadgeURL   template.URL
	ProjectURL template.URL
}

type repositoryView struct {
	Name     string
	Branches []branchView
}

type dashboardView struct {
	GeneratedAt  string
	Repositories []repositoryView
}

type Service struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		client: &http.Client{Timeout: tokenRequestTimeout},
		logger: logger,
	}
}

// Render produces the dashboard HTML for the configured repositories.
func (s *Service) Render(ctx context.Context, repositories []gitsync.RepositorySpec) (string, error) {
	view := dashboardView{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Repositories: lo.Map(repositories, func(repo gitsync.RepositorySpec, _ int) repositoryView {
			return repositoryView{
				Name: repo.Name,
				Branches: lo.Map(repo.Branches, func(branch string, _ int) branchView {
					return s.branchView(ctx, repo.Name, branch)
				}),
			}
		}),
	}

	var sb strings.Builder
	if err := dashboardTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}

	return sb.String(), nil
}

// WriteDashboard renders the dashboard and writes it to the configured file.
func (s *Service) WriteDashboard(ctx context.Context, repositories []gitsync.RepositorySpec) error {
	if s.config.OutputFile == "" {
		return nil
	}

	s.logger.Info(
		"generating badges dashboard",
		zap.Int("repositories", len(repositories)),
		zap.String("file", s.config.OutputFile),
	)

	content, err := s.Render(ctx, repositories)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.config.OutputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	return nil
}

func (s *Service) branchView(ctx context.Context, repository, branch string) branchView {
	projectKey := scanner.ProjectKey(repository, branch)

	badgeToken, err := s.badgeToken(ctx, projectKey)
	if err != nil {
		// Badge still renders on servers that allow anonymous access.
		s.logger.Warn("failed to get badge token", zap.String("project", projectKey), zap.Error(err))
	}

	return branchView{
		Name:       branch,
		Alt:        repository + " " + branch,
		BadgeURL:   template.URL(s.badgeURL(projectKey, badgeToken)),
		ProjectURL: template.URL(s.projectURL(projectKey)),
	}
}

// badgeToken fetches the project badge token from the SonarQube API.
func (s *Service) badgeToken(ctx context.Context, projectKey string) (string, error) {
	endpoint := s.config.SonarURL + "/api/project_badges/token?project=" + url.QueryEscape(projectKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build badge token request: %w", err)
	}
	if s.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get badge token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get badge token: status %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode badge token: %w", err)
	}

	return payload.Token, nil
}

func (s *Service) badgeURL(projectKey, badgeToken string) string {
	u := s.config.SonarURL + "/api/project_badges/quality_gate?project=" + url.QueryEscape(projectKey)
	if badgeToken != "" {
		u += "&token=" + url.QueryEscape(badgeToken)
	}
	return u
}

func (s *Service) projectURL(projectKey string) string {
	return s.config.SonarURL + "/dashboard?id=" + url.QueryEscape(projectKey)
}
