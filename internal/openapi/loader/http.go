package loader

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const acceptDocuments = "application/json, application/yaml;q=0.9, application/x-yaml;q=0.9, text/yaml;q=0.8, */*;q=0.5"

func httpStrategy(client *http.Client, timeout time.Duration, limit int64) fetchFunc {
	return func(ctx context.Context, url string) (payload, error) {
		if url == "" {
			return payload{}, errors.New("openapi loader: url is required")
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return payload{}, err
		}
		req.Header.Set("Accept", acceptDocuments)

		resp, err := client.Do(req)
		if err != nil {
			return payload{}, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return payload{}, errors.New("openapi loader: unexpected status " + resp.Status)
		}
		if limit > 0 && resp.ContentLength > limit {
			return payload{}, tooLarge(url, limit)
		}
		data, err := readCapped(resp.Body, limit, url)
		if err != nil {
			return payload{}, err
		}
		return payload{data: data, mediaType: resp.Header.Get("Content-Type")}, nil
	}
}
