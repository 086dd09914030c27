package domain

import "fmt"

// ContentDescriptor is the normalized result of a successful metadata lookup
type ContentDescriptor struct {
	ContentKind     ContentKind `json:"type"`
	ThumbnailURL    string      `json:"thumbnail"`
	Description     string      `json:"description"`
	DurationSeconds *int64      `json:"duration,omitempty"`
	// AvailableQualities is ordered as the metadata endpoint returned it.
	// Non-empty exactly when the kind is video-like.
	AvailableQualities []string `json:"qualities,omitempty"`
	// AssetLocator is the opaque platform-relative path used to build the
	// final asset request.
	AssetLocator string `json:"download_url"`
}

// HasQuality reports whether the label is among the available qualities
func (d *ContentDescriptor) HasQuality(quality string) bool {
	for _, q := range d.AvailableQualities {
		if q == quality {
			return true
		}
	}
	return false
}

// Validate checks the descriptor against the data-model contract. A
// violation means the metadata source broke its contract and is surfaced as
// MalformedResponseError.
func (d *ContentDescriptor) Validate() error {
	switch d.ContentKind {
	case KindPhoto, KindVideo, KindReel:
	default:
		return &MalformedResponseError{Message: fmt.Sprintf("unknown content type %q", d.ContentKind)}
	}
	if d.ThumbnailURL == "" {
		return &MalformedResponseError{Message: "missing thumbnail"}
	}
	if d.AssetLocator == "" {
		return &MalformedResponseError{Message: "missing download_url"}
	}
	if d.ContentKind.IsVideoLike() {
		if len(d.AvailableQualities) == 0 {
			return &MalformedResponseError{Message: fmt.Sprintf("%s content without quality labels", d.ContentKind)}
		}
		if d.DurationSeconds == nil {
			return &MalformedResponseError{Message: fmt.Sprintf("%s content without duration", d.ContentKind)}
		}
		if *d.DurationSeconds < 0 {
			return &MalformedResponseError{Message: "negative duration"}
		}
	} else if len(d.AvailableQualities) > 0 {
		return &MalformedResponseError{Message: "photo content with quality labels"}
	}
	return nil
}
