package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultBinary = "sonar-scanner"

var ErrScanFailed = errors.New("scanner execution failed")

// RunRequest describes one scanner invocation against a synced working copy.
type RunRequest struct {
	Dir         string
	ProjectKey  string
	ProjectName string
}

// Service invokes the external SonarQube scanner binary. The configured
// token never appears in logs or error messages.
type Service struct {
	config Config
	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	if config.Binary == "" {
		config.Binary = defaultBinary
	}
	return &Service{
		config: config,
		logger: logger,
	}
}

// ProjectKey derives the scan-server project key for a (repository, branch)
// pair. Path separators are replaced because project keys forbid them.
func ProjectKey(repoName, branch string) string {
	return strings.ReplaceAll(repoName+"-"+branch, "/", "-")
}

// ProjectName derives the human-readable project name for a pair.
func ProjectName(repoName, branch string) string {
	return fmt.Sprintf("%s (%s)", repoName, branch)
}

// Run executes the scanner against req.Dir and waits for it to finish.
func (s *Service) Run(ctx context.Context, req RunRequest) error {
	args := []string{
		"-Dsonar.host.url=" + s.config.HostURL,
		"-Dsonar.token=" + s.config.Token,
		"-Dsonar.projectKey=" + req.ProjectKey,
		"-Dsonar.projectName=" + req.ProjectName,
		"-Dsonar.projectBaseDir=" + req.Dir,
		"-Dsonar.coverage.exclusions=**",
	}
	args = append(args, s.config.ExtraArgs...)

	s.logger.Info("running scanner",
		zap.String("project_key", req.ProjectKey),
		zap.String("directory", req.Dir),
		zap.Strings("args", lo.Map(args, func(arg string, _ int) string { return s.redact(arg) })),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.config.Binary, args...)
	cmd.Dir = req.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.logger.Error("scanner failed",
				zap.String("project_key", req.ProjectKey),
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", s.redact(stderr.String())),
			)
			return fmt.Errorf("%w: exit code %d: %s",
				ErrScanFailed, exitErr.ExitCode(), s.redact(tail(stderr.String())))
		}
		return fmt.Errorf("%w: %s", ErrScanFailed, s.redact(err.Error()))
	}

	s.logger.Info("scan completed", zap.String("project_key", req.ProjectKey))
	s.logger.Debug("scanner output", zap.String("stdout", stdout.String()))
	return nil
}

func (s *Service) redact(text string) string {
	if s.config.Token == "" {
		return text
	}
	return strings.ReplaceAll(text, s.config.Token, "***")
}

// tail keeps error messages bounded when the scanner dumps a long trace.
func tail(text string) string {
	const maxLen = 512
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}
	return "..." + text[len(text)-maxLen:]
}
