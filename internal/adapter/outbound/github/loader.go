package github

import (
	"context"
	"fmt"
	"os"
)

// ReadFile reads a local path or a github:// URL.
// Configuration and fixture loading both go through it.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if IsGitHubURL(path) {
		content, err := NewGHClient().FetchFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s from GitHub: %w", path, err)
		}
		return content, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return content, nil
}
