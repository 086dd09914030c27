package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// MetadataClient issues metadata requests against the remote platform
// endpoints. At most one request may be in flight; a second call while one
// is pending is rejected with BusyError rather than queued.
type MetadataClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	inFlight   atomic.Bool
}

// NewMetadataClient creates a metadata client for the configured endpoint
func NewMetadataClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *MetadataClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetadataClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

type metadataRequest struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
}

// metadataResponse is the wire form of a successful metadata lookup
type metadataResponse struct {
	Type        string   `json:"type"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Duration    *float64 `json:"duration"`
	Qualities   []string `json:"qualities"`
	DownloadURL string   `json:"download_url"`
}

// FetchMetadata implements domain.MetadataFetcher
func (c *MetadataClient) FetchMetadata(ctx context.Context, platform domain.Platform, normalizedURL string, hint domain.ContentKind) (*domain.ContentDescriptor, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, &domain.BusyError{Operation: "metadata fetch"}
	}
	defer c.inFlight.Store(false)

	spec, err := domain.Spec(platform)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(metadataRequest{
		URL:         normalizedURL,
		ContentType: string(hint),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+spec.MetadataPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Requesting metadata",
		zap.String("platform", string(platform)),
		zap.String("url", normalizedURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverErrorFromBody(resp.StatusCode, body, "metadata lookup failed")
	}

	var wire metadataResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &domain.MalformedResponseError{Message: fmt.Sprintf("undecodable metadata payload: %v", err)}
	}

	descriptor := &domain.ContentDescriptor{
		ContentKind:        domain.ContentKind(wire.Type),
		ThumbnailURL:       wire.Thumbnail,
		Description:        wire.Description,
		AvailableQualities: wire.Qualities,
		AssetLocator:       wire.DownloadURL,
	}
	if wire.Duration != nil {
		seconds := int64(*wire.Duration)
		descriptor.DurationSeconds = &seconds
	}

	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	return descriptor, nil
}

// serverErrorFromBody builds a ServerError, preferring the endpoint's own
// error message when the body carries one.
func serverErrorFromBody(status int, body []byte, fallback string) *domain.ServerError {
	var wire struct {
		Error string `json:"error"`
	}
	message := fallback
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		message = wire.Error
	}
	return &domain.ServerError{Status: status, Message: message}
}
