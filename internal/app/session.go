package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// defaultQuality is preferred when qualities become available and no prior
// selection exists.
const defaultQuality = "720p"

// Notification kinds emitted by the session in addition to error kinds
const (
	NotifyContentTypeRequired = "content-type-required"
	NotifyMetadataReady       = "metadata-ready"
	NotifyDownloadCompleted   = "download-completed"
)

// Session owns the retrieval state for one downloader page: the current
// URL, optional content-type hint, descriptor, quality selection and
// busy/error state. It sequences the validator, metadata fetcher and asset
// fetcher in response to user intents and exposes a read-only snapshot to
// the presentation layer.
type Session struct {
	ID       string
	platform domain.Platform
	spec     *domain.PlatformSpec

	metadata domain.MetadataFetcher
	assets   domain.AssetFetcher
	notifier domain.Notifier
	logger   *zap.Logger

	mu              sync.Mutex
	phase           domain.Phase
	rawURL          string
	normalizedURL   string
	contentTypeHint domain.ContentKind
	descriptor      *domain.ContentDescriptor
	selectedQuality string
	lastError       error
	// generation increments whenever the session starts a fetch or is
	// reset; a completion whose generation no longer matches is stale and
	// must be discarded instead of applied.
	generation uint64
}

// NewSession creates a session for a downloader page
func NewSession(
	platform domain.Platform,
	metadata domain.MetadataFetcher,
	assets domain.AssetFetcher,
	notifier domain.Notifier,
	logger *zap.Logger,
) (*Session, error) {
	spec, err := domain.Spec(platform)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:       uuid.New().String(),
		platform: platform,
		spec:     spec,
		metadata: metadata,
		assets:   assets,
		notifier: notifier,
		logger:   logger,
		phase:    domain.PhaseIdle,
	}, nil
}

// Platform returns the platform this session retrieves from
func (s *Session) Platform() domain.Platform {
	return s.platform
}

// ErrorInfo is the presentation-facing rendering of the last failure
type ErrorInfo struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// Snapshot is a read-only view of the session for the presentation layer
type Snapshot struct {
	ID              string                    `json:"id"`
	Platform        domain.Platform           `json:"platform"`
	Phase           domain.Phase              `json:"phase"`
	RawURL          string                    `json:"raw_url,omitempty"`
	ContentTypeHint domain.ContentKind        `json:"content_type,omitempty"`
	Descriptor      *domain.ContentDescriptor `json:"descriptor,omitempty"`
	DurationDisplay string                    `json:"duration_display,omitempty"`
	SelectedQuality string                    `json:"selected_quality,omitempty"`
	LastError       *ErrorInfo                `json:"error,omitempty"`
}

// Snapshot returns the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:              s.ID,
		Platform:        s.platform,
		Phase:           s.phase,
		RawURL:          s.rawURL,
		ContentTypeHint: s.contentTypeHint,
		Descriptor:      s.descriptor,
		SelectedQuality: s.selectedQuality,
	}
	if s.descriptor != nil && s.descriptor.ContentKind.IsVideoLike() {
		snap.DurationDisplay = domain.FormatDuration(s.descriptor.DurationSeconds)
	}
	if s.lastError != nil {
		snap.LastError = &ErrorInfo{
			Kind:    domain.KindOf(s.lastError),
			Message: s.lastError.Error(),
		}
	}
	return snap
}

// SelectContentType records the photo/reel choice for platforms whose URL
// shapes cannot distinguish content kinds.
func (s *Session) SelectContentType(hint domain.ContentKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsBusy() {
		err := &domain.InvalidStateError{Phase: s.phase, Intent: "select content type"}
		s.lastError = err
		return err
	}
	s.lastError = nil

	if !s.spec.RequiresKindHint {
		err := &domain.ValidationError{
			Reason:  "hint-not-applicable",
			Message: fmt.Sprintf("%s does not take a content-type selection", s.spec.DisplayName),
		}
		s.lastError = err
		return err
	}
	if !s.spec.ValidateHint(hint) {
		err := &domain.ValidationError{
			Reason:  "hint-invalid",
			Message: fmt.Sprintf("unsupported content type %q for %s", hint, s.spec.DisplayName),
		}
		s.lastError = err
		return err
	}

	s.contentTypeHint = hint
	if s.phase == domain.PhaseAwaitingContentType {
		s.phase = domain.PhaseIdle
	}
	return nil
}

// SubmitURL validates the raw URL and, when it passes, runs the metadata
// lookup. The caller is suspended until the lookup completes; a second
// submit while one is pending is rejected with BusyError.
func (s *Session) SubmitURL(ctx context.Context, rawURL string) error {
	s.mu.Lock()
	if s.phase.IsBusy() {
		err := &domain.BusyError{Operation: "search"}
		s.mu.Unlock()
		return err
	}
	s.lastError = nil
	s.rawURL = rawURL

	if s.spec.RequiresKindHint && s.contentTypeHint == "" {
		s.phase = domain.PhaseAwaitingContentType
		s.mu.Unlock()
		s.notify(domain.Notification{
			Kind:    NotifyContentTypeRequired,
			Message: fmt.Sprintf("Choose a content type before searching %s", s.spec.DisplayName),
		})
		return nil
	}

	normalized, err := s.spec.Classify(rawURL)
	if err != nil {
		s.lastError = err
		s.mu.Unlock()
		s.notify(domain.Notification{Kind: string(domain.KindValidation), Message: err.Error()})
		return err
	}

	s.normalizedURL = normalized
	s.descriptor = nil
	s.selectedQuality = ""
	s.phase = domain.PhaseSearching
	s.generation++
	gen := s.generation
	hint := s.contentTypeHint
	s.mu.Unlock()

	s.logger.Info("Fetching metadata",
		zap.String("session", s.ID),
		zap.String("platform", string(s.platform)),
		zap.String("url", normalized))

	descriptor, err := s.metadata.FetchMetadata(ctx, s.platform, normalized, hint)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale metadata result", zap.String("session", s.ID))
		return nil
	}
	if err != nil {
		s.phase = domain.PhaseFailed
		s.lastError = err
		s.mu.Unlock()
		s.logger.Warn("Metadata fetch failed",
			zap.String("session", s.ID),
			zap.Error(err))
		s.notify(domain.Notification{Kind: string(domain.KindOf(err)), Message: err.Error()})
		return err
	}

	s.descriptor = descriptor
	s.selectedQuality = pickDefaultQuality(descriptor)
	s.phase = domain.PhaseReady
	s.mu.Unlock()

	s.logger.Info("Metadata ready",
		zap.String("session", s.ID),
		zap.String("kind", string(descriptor.ContentKind)))
	s.notify(domain.Notification{
		Kind:    NotifyMetadataReady,
		Message: fmt.Sprintf("Found %s content", descriptor.ContentKind),
	})
	return nil
}

// SelectQuality updates the quality selection. No I/O; the session stays
// Ready.
func (s *Session) SelectQuality(quality string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseReady {
		err := &domain.InvalidStateError{Phase: s.phase, Intent: "select quality"}
		s.lastError = err
		return err
	}
	s.lastError = nil

	if !s.descriptor.ContentKind.IsVideoLike() || !s.descriptor.HasQuality(quality) {
		err := &domain.ValidationError{
			Reason:  domain.ReasonQualityUnavailable,
			Message: fmt.Sprintf("quality %q is not available", quality),
		}
		s.lastError = err
		return err
	}

	s.selectedQuality = quality
	return nil
}

// StartDownload runs the asset fetch at the selected quality (or the given
// override) and finalizes the local save. The descriptor survives a failed
// attempt so the user can retry another quality without re-searching.
func (s *Session) StartDownload(ctx context.Context, qualityOverride string) (*domain.SavedAsset, error) {
	s.mu.Lock()
	if s.phase != domain.PhaseReady {
		err := &domain.InvalidStateError{Phase: s.phase, Intent: "start download"}
		s.lastError = err
		s.mu.Unlock()
		return nil, err
	}
	s.lastError = nil

	if qualityOverride != "" {
		if !s.descriptor.ContentKind.IsVideoLike() || !s.descriptor.HasQuality(qualityOverride) {
			err := &domain.ValidationError{
				Reason:  domain.ReasonQualityUnavailable,
				Message: fmt.Sprintf("quality %q is not available", qualityOverride),
			}
			s.lastError = err
			s.mu.Unlock()
			return nil, err
		}
		s.selectedQuality = qualityOverride
	}

	descriptor := s.descriptor
	quality := s.selectedQuality
	s.phase = domain.PhaseDownloading
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.logger.Info("Fetching asset",
		zap.String("session", s.ID),
		zap.String("platform", string(s.platform)),
		zap.String("quality", quality))

	asset, err := s.assets.FetchAsset(ctx, s.platform, descriptor, quality)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale asset result", zap.String("session", s.ID))
		return nil, nil
	}
	// The descriptor is retained on failure as well, enabling repeat
	// downloads at different qualities.
	s.phase = domain.PhaseReady
	if err != nil {
		s.lastError = err
		s.mu.Unlock()
		s.logger.Warn("Asset fetch failed",
			zap.String("session", s.ID),
			zap.Error(err))
		s.notify(domain.Notification{Kind: string(domain.KindOf(err)), Message: err.Error()})
		return nil, err
	}
	s.mu.Unlock()

	s.logger.Info("Asset saved",
		zap.String("session", s.ID),
		zap.String("file", asset.FilePath))
	s.notify(domain.Notification{
		Kind:    NotifyDownloadCompleted,
		Message: fmt.Sprintf("Saved %s", asset.FileName),
	})
	return asset, nil
}

// EditURL resets the session to Idle when the user changes the input,
// clearing the descriptor, quality selection, hint and error. An in-flight
// fetch runs to completion but its result is discarded.
func (s *Session) EditURL() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.phase = domain.PhaseIdle
	s.rawURL = ""
	s.normalizedURL = ""
	s.contentTypeHint = ""
	s.descriptor = nil
	s.selectedQuality = ""
	s.lastError = nil
}

func (s *Session) notify(n domain.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

// pickDefaultQuality prefers 720p when available, else the first label
func pickDefaultQuality(d *domain.ContentDescriptor) string {
	if !d.ContentKind.IsVideoLike() {
		return ""
	}
	if d.HasQuality(defaultQuality) {
		return defaultQuality
	}
	if len(d.AvailableQualities) > 0 {
		return d.AvailableQualities[0]
	}
	return ""
}
