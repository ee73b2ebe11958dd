package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

func readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("manifest fetch: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}
