package gemini

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const analysisTemplate = `Analyze this codebase and answer this question: %s

Analyze the architecture, patterns used, technologies, 
and provide specific recommendations.`

// AnalysisPrompt embeds question verbatim in the analysis template.
func AnalysisPrompt(question string) string {
	return fmt.Sprintf(analysisTemplate, question)
}

// ResolveDirectory returns the absolute form of path after checking that it
// exists and is a directory. An empty path means the current directory.
func ResolveDirectory(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	// Follow symlinks the same way the process will when it chdirs.
	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: path}
	}
	return abs, nil
}

// AnalyzeDirectory runs Gemini over an entire directory tree with --all_files,
// using the directory as the working directory.
func (c *Client) AnalyzeDirectory(ctx context.Context, question, path, model string) (string, error) {
	dir, err := ResolveDirectory(path)
	if err != nil {
		c.logger.ErrorContext(ctx, "error analyzing codebase", slog.Any("error", err))
		return "", err
	}

	c.logger.InfoContext(ctx, "analyzing codebase", slog.String("dir", dir))

	return c.Execute(ctx, AnalysisPrompt(question), model, nil, Options{
		AllFiles: true,
		Dir:      dir,
	})
}
