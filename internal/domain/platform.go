package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Platform represents a supported content source
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

// ContentKind represents the category of retrievable media
type ContentKind string

const (
	KindPhoto ContentKind = "Photo"
	KindVideo ContentKind = "Video"
	KindReel  ContentKind = "Reel"
)

// IsVideoLike reports whether the kind carries duration and quality variants
func (k ContentKind) IsVideoLike() bool {
	return k == KindVideo || k == KindReel
}

// urlShape is one accepted URL form for a platform. normalize receives the
// submatches of pattern and returns the canonical URL used for all
// subsequent requests.
type urlShape struct {
	pattern   *regexp.Regexp
	normalize func(matches []string) string
}

// PlatformSpec is the per-platform configuration table: accepted URL shapes,
// metadata endpoint path, content-kind rules and filename defaults.
type PlatformSpec struct {
	Platform     Platform
	DisplayName  string
	MetadataPath string
	// RequiresKindHint is true for platforms where the URL shape alone
	// cannot distinguish photo from reel content.
	RequiresKindHint bool
	AllowedHints     []ContentKind
	shapes           []urlShape
}

var (
	youtubeWatchRe = regexp.MustCompile(`^https://(www\.)?youtube\.com/watch\?(.+)$`)
	youtubeShortRe = regexp.MustCompile(`^https://youtu\.be/([\w-]+)`)
	facebookPostRe = regexp.MustCompile(`^https://(www\.)?facebook\.com/([^/?#]+)/(posts|videos)/(\d+)`)
	instagramRe    = regexp.MustCompile(`^https://(www\.)?instagram\.com/(p|reel)/([A-Za-z0-9_-]+)`)
	youtubeIDRe    = regexp.MustCompile(`^[\w-]+$`)
)

var platformSpecs = map[Platform]*PlatformSpec{
	PlatformYouTube: {
		Platform:     PlatformYouTube,
		DisplayName:  "YouTube",
		MetadataPath: "/api/youtube/metadata",
		shapes: []urlShape{
			{
				pattern:   youtubeWatchRe,
				normalize: normalizeYouTubeWatch,
			},
			{
				pattern: youtubeShortRe,
				normalize: func(m []string) string {
					return "https://www.youtube.com/watch?v=" + m[1]
				},
			},
		},
	},
	PlatformFacebook: {
		Platform:     PlatformFacebook,
		DisplayName:  "Facebook",
		MetadataPath: "/api/facebook/metadata",
		shapes: []urlShape{
			{
				pattern: facebookPostRe,
				normalize: func(m []string) string {
					return fmt.Sprintf("https://www.facebook.com/%s/%s/%s", m[2], m[3], m[4])
				},
			},
		},
	},
	PlatformInstagram: {
		Platform:         PlatformInstagram,
		DisplayName:      "Instagram",
		MetadataPath:     "/api/instagram/metadata",
		RequiresKindHint: true,
		AllowedHints:     []ContentKind{KindPhoto, KindReel},
		shapes: []urlShape{
			{
				pattern: instagramRe,
				normalize: func(m []string) string {
					return fmt.Sprintf("https://www.instagram.com/%s/%s/", m[2], m[3])
				},
			},
		},
	},
}

// normalizeYouTubeWatch strips extraneous query parameters from the watch
// form, retaining only the primary video identifier.
func normalizeYouTubeWatch(m []string) string {
	values, err := url.ParseQuery(m[2])
	if err != nil {
		return ""
	}
	id := values.Get("v")
	if id == "" || !youtubeIDRe.MatchString(id) {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + id
}

// Spec returns the configuration table entry for a platform
func Spec(platform Platform) (*PlatformSpec, error) {
	spec, ok := platformSpecs[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	return spec, nil
}

// Platforms returns all supported platforms
func Platforms() []Platform {
	return []Platform{PlatformYouTube, PlatformFacebook, PlatformInstagram}
}

// ValidatePlatform checks if a platform is supported
func ValidatePlatform(platform Platform) bool {
	_, ok := platformSpecs[platform]
	return ok
}

// ValidateHint checks if a content-type hint is acceptable for the platform
func (s *PlatformSpec) ValidateHint(hint ContentKind) bool {
	for _, h := range s.AllowedHints {
		if h == hint {
			return true
		}
	}
	return false
}

// Classify matches a raw URL against the platform's accepted shapes and
// returns the canonical form. Pure function, no I/O; re-classifying the
// returned URL yields the same result.
func (s *PlatformSpec) Classify(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	for _, shape := range s.shapes {
		m := shape.pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		normalized := shape.normalize(m)
		if normalized == "" {
			continue
		}
		return normalized, nil
	}
	return "", &ValidationError{
		Reason:  ReasonNoMatch,
		Message: fmt.Sprintf("URL does not match any accepted %s shape", s.DisplayName),
	}
}

// DetectPlatform detects the platform from a URL, returning "" when no
// platform's shapes match.
func DetectPlatform(rawURL string) Platform {
	for _, platform := range Platforms() {
		if _, err := platformSpecs[platform].Classify(rawURL); err == nil {
			return platform
		}
	}
	return ""
}
