package customHttpClient

import (
	"net/http"

	"github.com/akolanti/DocScanAPI/internal/config"
)

// shared pooled transport so the vision backend reuses connections to the
// provider instead of re-dialing per call
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

func PooledClient() *http.Client {
	return pooledClient
}
