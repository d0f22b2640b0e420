package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadInputFile reads a payload to pipe into the Gemini process's stdin.
// A path of "-" reads from r instead. Whitespace-only payloads are rejected.
func LoadInputFile(path string, r io.Reader) (string, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(r)
	} else {
		content, err = os.ReadFile(path) // #nosec G304 - path is supplied by the operator
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("input file not found: %s", path)
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input := string(content)
	if err := ValidateInput(input); err != nil {
		return "", err
	}
	return input, nil
}

// ValidateInput ensures an input payload is non-empty after trimming whitespace.
func ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input is empty")
	}
	return nil
}
