package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName    = "StudyLog"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/studylog/backend"
)

// UserAgent identifies outbound GitHub API calls.
var UserAgent = AppName + "/" + AppVersion + " (+" + AppRepo + ")"

const (
	defaultPort     = "5000"
	defaultFilePath = "study.json"
	defaultBranch   = "main"
	defaultTimeout  = 30 * time.Second
	defaultLogLevel = "info"
)

var (
	ErrMissingToken = errors.New("GITHUB_PAT is not set")
	ErrMissingRepo  = errors.New("REPO_NAME is not set")
	ErrInvalidRepo  = errors.New("REPO_NAME must be in owner/name form")
)

type Config struct {
	Addr        string
	GitHubToken string
	RepoName    string
	FilePath    string
	Branch      string
	ProxyURL    string
	HTTPTimeout time.Duration
	LogLevel    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv for lookups.
func LoadFrom(getenv func(string) string) Config {
	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	filePath := strings.TrimSpace(getenv("STUDY_FILE_PATH"))
	if filePath == "" {
		filePath = defaultFilePath
	}
	branch := strings.TrimSpace(getenv("STUDY_BRANCH"))
	if branch == "" {
		branch = defaultBranch
	}
	timeout := defaultTimeout
	if raw := strings.TrimSpace(getenv("STUDY_HTTP_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}
	level := strings.TrimSpace(getenv("STUDY_LOG_LEVEL"))
	if level == "" {
		level = defaultLogLevel
	}

	return Config{
		Addr:        "0.0.0.0:" + port,
		GitHubToken: strings.TrimSpace(getenv("GITHUB_PAT")),
		RepoName:    strings.TrimSpace(getenv("REPO_NAME")),
		FilePath:    strings.TrimPrefix(filePath, "/"),
		Branch:      branch,
		ProxyURL:    strings.TrimSpace(getenv("STUDY_PROXY_URL")),
		HTTPTimeout: timeout,
		LogLevel:    level,
	}
}

// Validate reports whether the remote store can be reached with this config.
func (c Config) Validate() error {
	if c.GitHubToken == "" {
		return ErrMissingToken
	}
	if c.RepoName == "" {
		return ErrMissingRepo
	}
	if _, _, err := c.Repository(); err != nil {
		return err
	}
	return nil
}

// Repository splits RepoName into owner and repository name.
func (c Config) Repository() (owner, name string, err error) {
	owner, name, ok := strings.Cut(c.RepoName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, c.RepoName)
	}
	return owner, name, nil
}
