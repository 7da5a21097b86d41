package github

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// URLScheme prefixes every GitHub-hosted file reference, e.g.
// github://owner/repo/path/to/fixtures.yaml@main
const URLScheme = "github://"

// GHClient wraps the gh CLI for reading repository files.
// Authentication is whatever gh is logged in with.
type GHClient struct {
	// command is the gh executable; overridable in tests.
	command string
}

// NewGHClient creates a new GitHub client
func NewGHClient() *GHClient {
	return &GHClient{command: "gh"}
}

// FileRef identifies a file in a GitHub repository.
type FileRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // Branch, tag or commit. Empty means the default branch.
}

// ParseURL parses a github:// URL.
// Format: github://owner/repo/path/to/file[@ref]
func ParseURL(githubURL string) (FileRef, error) {
	if !IsGitHubURL(githubURL) {
		return FileRef{}, fmt.Errorf("invalid GitHub URL format: %s", githubURL)
	}
	urlPath := strings.TrimPrefix(githubURL, URLScheme)

	var ref FileRef
	if at := strings.LastIndex(urlPath, "@"); at >= 0 {
		ref.Ref = urlPath[at+1:]
		urlPath = urlPath[:at]
		if ref.Ref == "" {
			return FileRef{}, fmt.Errorf("invalid GitHub URL format: empty ref in %s", githubURL)
		}
	}

	parts := strings.SplitN(urlPath, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return FileRef{}, fmt.Errorf("invalid GitHub URL format: expected github://owner/repo/path/to/file")
	}
	ref.Owner, ref.Repo, ref.Path = parts[0], parts[1], parts[2]
	return ref, nil
}

// APIPath is the contents API path for the file.
func (r FileRef) APIPath() string {
	p := fmt.Sprintf("repos/%s/%s/contents/%s", r.Owner, r.Repo, r.Path)
	if r.Ref != "" {
		p += "?ref=" + r.Ref
	}
	return p
}

// FetchFile retrieves the raw content of a file using the gh CLI.
func (c *GHClient) FetchFile(ctx context.Context, githubURL string) ([]byte, error) {
	ref, err := ParseURL(githubURL)
	if err != nil {
		return nil, err
	}
	if err := c.checkGHCommand(ctx); err != nil {
		return nil, err
	}

	// The raw media type returns the file body directly instead of base64 JSON.
	cmd := exec.CommandContext(ctx, c.command, "api", "-H", "Accept: application/vnd.github.raw", ref.APIPath())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("gh command failed: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("gh command failed: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("empty response from GitHub for %s", githubURL)
	}
	return stdout.Bytes(), nil
}

// checkGHCommand verifies that the gh CLI is installed and authenticated
func (c *GHClient) checkGHCommand(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.command, "auth", "status")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "not found") || strings.Contains(err.Error(), "executable file not found") {
			return fmt.Errorf("gh CLI is not installed. Please install it from https://cli.github.com/")
		}
		if strings.Contains(stderr.String(), "not logged in") {
			return fmt.Errorf("gh CLI is not authenticated. Please run 'gh auth login' first")
		}
		return fmt.Errorf("gh auth check failed: %s", stderr.String())
	}
	return nil
}

// IsGitHubURL checks if a URL is a GitHub URL
func IsGitHubURL(url string) bool {
	return strings.HasPrefix(url, URLScheme)
}
