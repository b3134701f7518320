package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

// NewGitHubClient returns a GitHub API client authenticated with token.
func NewGitHubClient(httpClient *http.Client, token, userAgent string) *github.Client {
	client := github.NewClient(httpClient).WithAuthToken(token)
	if userAgent != "" {
		client.UserAgent = userAgent
	}
	return client
}

// GitHubStore keeps files in a GitHub repository through the contents API.
// Versions are blob SHAs; GitHub rejects an update whose SHA is stale.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

func NewGitHubStore(client *github.Client, owner, repo, branch string) *GitHubStore {
	return &GitHubStore{client: client, owner: owner, repo: repo, branch: branch}
}

func (s *GitHubStore) Read(ctx context.Context, path string) (File, error) {
	opts := &github.RepositoryContentGetOptions{Ref: s.branch}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return File{}, classifyGitHubError("read", path, resp, err)
	}
	if file == nil {
		return File{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	var content []byte
	if file.GetEncoding() == "none" {
		// Files over 1 MB come back without inline content.
		content, err = s.download(ctx, path, opts)
		if err != nil {
			return File{}, err
		}
	} else {
		decoded, err := file.GetContent()
		if err != nil {
			return File{}, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
		}
		content = []byte(decoded)
	}

	return File{Path: file.GetPath(), Content: content, Version: file.GetSHA()}, nil
}

func (s *GitHubStore) download(ctx context.Context, path string, opts *github.RepositoryContentGetOptions) ([]byte, error) {
	body, resp, err := s.client.Repositories.DownloadContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return nil, classifyGitHubError("download", path, resp, err)
	}
	defer body.Close()
	// The raw download body is returned whatever the status.
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, classifyGitHubError("download", path, resp, fmt.Errorf("unexpected status %d", status))
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", ErrUnavailable, path, err)
	}
	return content, nil
}

func (s *GitHubStore) Write(ctx context.Context, path string, content []byte, version, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		SHA:     github.String(version),
		Branch:  github.String(s.branch),
	}
	_, resp, err := s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return classifyGitHubError("write", path, resp, err)
	}
	return nil
}

func classifyGitHubError(op, path string, resp *github.Response, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: github %s %s: %v", ErrUnavailable, op, path, err)
	}

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	kind := ErrUnavailable
	switch status {
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrUnauthorized
	case http.StatusConflict:
		kind = ErrConflict
	case http.StatusUnprocessableEntity:
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && strings.Contains(strings.ToLower(ghErr.Message), "sha") {
			kind = ErrConflict
		}
	}
	return fmt.Errorf("%w: github %s %s: %v", kind, op, path, err)
}
