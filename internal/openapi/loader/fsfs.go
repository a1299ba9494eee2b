package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// fsStrategy serves SourceFromFS locations out of an embedded or virtual
// filesystem, honouring the same size cap as files on disk.
func fsStrategy(filesystem fs.FS, limit int64) fetchFunc {
	return func(_ context.Context, name string) (payload, error) {
		if name == "" {
			return payload{}, errors.New("openapi loader: fs path is required")
		}
		f, err := filesystem.Open(name)
		if err != nil {
			return payload{}, fmt.Errorf("openapi loader: read %s: %w", name, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return payload{}, fmt.Errorf("openapi loader: stat %s: %w", name, err)
		}
		if info.IsDir() {
			return payload{}, fmt.Errorf("openapi loader: %s is a directory", name)
		}
		if limit > 0 && info.Size() > limit {
			return payload{}, tooLarge(name, limit)
		}
		data, err := readCapped(f, limit, name)
		if err != nil {
			return payload{}, err
		}
		return payload{data: data}, nil
	}
}
