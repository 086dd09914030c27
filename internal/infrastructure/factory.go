package infrastructure

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// HTTPClientFactory builds per-session metadata and asset clients. Clients
// share the underlying HTTP transport, saver and ledger, but each session
// gets fresh client instances so the single-flight busy guards stay
// per-session.
type HTTPClientFactory struct {
	baseURL    string
	httpClient *http.Client
	saver      domain.Saver
	ledger     domain.SaveRepository
	logger     *zap.Logger
}

// NewHTTPClientFactory creates a factory for the configured endpoint. A
// timeout of 0 leaves the HTTP client without a deadline.
func NewHTTPClientFactory(config domain.EndpointConfig, saver domain.Saver, ledger domain.SaveRepository, logger *zap.Logger) *HTTPClientFactory {
	return &HTTPClientFactory{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		saver:      saver,
		ledger:     ledger,
		logger:     logger,
	}
}

// NewMetadataFetcher implements app.ClientFactory
func (f *HTTPClientFactory) NewMetadataFetcher() domain.MetadataFetcher {
	return NewMetadataClient(f.baseURL, f.httpClient, f.logger)
}

// NewAssetFetcher implements app.ClientFactory
func (f *HTTPClientFactory) NewAssetFetcher() domain.AssetFetcher {
	return NewAssetClient(f.baseURL, f.httpClient, f.saver, f.ledger, f.logger)
}
