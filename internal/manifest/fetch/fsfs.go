package fetch

import (
	"context"
	"errors"
	"io/fs"
)

func readFS(ctx context.Context, fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.New("manifest fetch: filesystem is not configured")
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, errors.New("manifest fetch: invalid fs path " + name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}
