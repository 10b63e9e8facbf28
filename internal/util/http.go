package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxFetchBytes caps remote downloads.
const MaxFetchBytes = 32 << 20

func GetBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	client := http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxFetchBytes {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, MaxFetchBytes)
	}
	return b, nil
}
