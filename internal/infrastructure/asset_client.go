package infrastructure

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// AssetClient retrieves media assets and finalizes local saves. At most one
// asset request may be in flight; concurrent triggers are rejected with
// BusyError.
type AssetClient struct {
	baseURL    string
	httpClient *http.Client
	saver      domain.Saver
	ledger     domain.SaveRepository
	logger     *zap.Logger
	inFlight   atomic.Bool
}

// NewAssetClient creates an asset client. The ledger may be nil when saves
// should not be recorded.
func NewAssetClient(baseURL string, httpClient *http.Client, saver domain.Saver, ledger domain.SaveRepository, logger *zap.Logger) *AssetClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		saver:      saver,
		ledger:     ledger,
		logger:     logger,
	}
}

// FetchAsset implements domain.AssetFetcher
func (c *AssetClient) FetchAsset(ctx context.Context, platform domain.Platform, descriptor *domain.ContentDescriptor, quality string) (*domain.SavedAsset, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, &domain.BusyError{Operation: "asset fetch"}
	}
	defer c.inFlight.Store(false)

	videoLike := descriptor.ContentKind.IsVideoLike()
	if videoLike {
		if !descriptor.HasQuality(quality) {
			return nil, &domain.ValidationError{
				Reason:  domain.ReasonQualityUnavailable,
				Message: fmt.Sprintf("quality %q is not available", quality),
			}
		}
	} else {
		// Photo requests ignore quality
		quality = ""
	}

	target := c.baseURL + descriptor.AssetLocator
	if videoLike {
		target += "?quality=" + quality
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset request: %w", err)
	}

	c.logger.Debug("Requesting asset",
		zap.String("platform", string(platform)),
		zap.String("target", target))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, serverErrorFromBody(resp.StatusCode, body, "asset fetch failed")
	}

	contentType := resp.Header.Get("Content-Type")
	if videoLike && !isVideoMediaType(contentType) {
		// Misrouted response; do not save whatever this is
		return nil, &domain.UnexpectedContentTypeError{ContentType: contentType}
	}

	fileName := buildFileName(platform, descriptor.ContentKind, quality, contentType)
	path, size, err := c.saver.Save(fileName, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	asset := domain.NewSavedAsset(platform, descriptor.ContentKind, quality, descriptor.AssetLocator, fileName, path, size)
	if c.ledger != nil {
		if err := c.ledger.Create(asset); err != nil {
			c.logger.Error("Failed to record save in ledger",
				zap.String("file", path),
				zap.Error(err))
		}
	}

	c.logger.Info("Asset saved",
		zap.String("platform", string(platform)),
		zap.String("file", path),
		zap.Int64("size", size))
	return asset, nil
}

// isVideoMediaType reports whether the declared media type is a video type
func isVideoMediaType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "video/")
}

// buildFileName derives the deterministic local filename from the content
// kind and quality. Video-like assets are mp4; photos keep the source image
// extension, defaulting to jpg.
func buildFileName(platform domain.Platform, kind domain.ContentKind, quality, contentType string) string {
	kindPart := strings.ToLower(string(kind))
	if kind.IsVideoLike() {
		return fmt.Sprintf("%s_%s_%s.mp4", platform, kindPart, quality)
	}
	return fmt.Sprintf("%s_%s.%s", platform, kindPart, imageExtension(contentType))
}

func imageExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "jpg"
	}
	switch mediaType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
