package client

import (
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v9"
)

type Client struct {
	*http.Client
	OMDBAPIKey   string
	OMDBCacheTTL time.Duration
	FCMKey       string
	// FCMEndpoint overrides the FCM send URL; empty means the live service.
	FCMEndpoint string
	// Redis, when set, caches provider responses. Nil disables caching.
	Redis  *redis.Client
	Logger logger
}

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

func newRequest(method string, url string, body io.Reader) (*http.Request, error) {
	r, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	setDefaultRequestHeader(r)
	return r, nil
}

func setDefaultRequestHeader(r *http.Request) {
	r.Header.Set("User-Agent", "Mozilla/5.0")
	r.Header.Set("Accept", "application/json")
}
