package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// Scopes requested for the service account
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// NewAuthorizedHTTPClient builds an HTTP client that signs requests with the
// service-account key in jsonKey
func NewAuthorizedHTTPClient(ctx context.Context, jsonKey []byte, timeout time.Duration) (*http.Client, error) {
	if len(jsonKey) == 0 {
		return nil, fmt.Errorf("service account key is empty")
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	hc := jwtConfig.Client(ctx)
	hc.Timeout = timeout
	return hc, nil
}

// LoadServiceAccountKey returns inlineJSON when set, otherwise reads path
func LoadServiceAccountKey(inlineJSON, path string) ([]byte, error) {
	if inlineJSON != "" {
		return []byte(inlineJSON), nil
	}
	if path == "" {
		return nil, fmt.Errorf("no service account key configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}
	return data, nil
}
