package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func fileStrategy(limit int64) fetchFunc {
	return func(_ context.Context, path string) (payload, error) {
		if path == "" {
			return payload{}, errors.New("openapi loader: file path is required")
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return payload{}, err
		}

		f, err := os.Open(abs)
		if err != nil {
			return payload{}, fmt.Errorf("openapi loader: read %s: %w", path, err)
		}
		defer f.Close()

		if info, err := f.Stat(); err == nil && limit > 0 && info.Size() > limit {
			return payload{}, tooLarge(path, limit)
		}
		data, err := readCapped(f, limit, path)
		if err != nil {
			return payload{}, err
		}
		return payload{data: data}, nil
	}
}
