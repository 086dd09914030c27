package domain

import (
	"context"
	"io"
)

// MetadataFetcher issues the metadata request for a platform and produces a
// ContentDescriptor or a typed failure. At most one request may be in flight
// per fetcher; a second call while one is pending fails with BusyError.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, platform Platform, normalizedURL string, hint ContentKind) (*ContentDescriptor, error)
}

// AssetFetcher retrieves the media asset for a descriptor at the chosen
// quality and finalizes a local save. Same single-flight rule as
// MetadataFetcher.
type AssetFetcher interface {
	FetchAsset(ctx context.Context, platform Platform, descriptor *ContentDescriptor, quality string) (*SavedAsset, error)
}

// Saver persists a binary payload under a deterministic filename. The
// presentation collaborator decides where the payload ultimately lands.
type Saver interface {
	Save(filename string, payload io.Reader) (path string, size int64, err error)
}

// Notification is a structured outcome event for the presentation layer
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Notifier receives structured outcome events instead of blocking
// user-facing alerts; the presentation collaborator decides how to render
// them.
type Notifier interface {
	Notify(n Notification)
}
