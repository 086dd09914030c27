package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

func TestMetadataClient_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type":         "Video",
			"thumbnail":    "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq.jpg",
			"description":  "Never Gonna Give You Up",
			"duration":     212,
			"qualities":    []string{"360p", "480p", "720p"},
			"download_url": "/api/youtube/download/dQw4w9WgXcQ/video",
		})
	}))
	defer server.Close()

	client := NewMetadataClient(server.URL, nil, nil)
	descriptor, err := client.FetchMetadata(context.Background(), domain.PlatformYouTube, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "")
	require.NoError(t, err)

	assert.Equal(t, "/api/youtube/metadata", gotPath)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", gotBody["url"])
	assert.NotContains(t, gotBody, "contentType")

	assert.Equal(t, domain.KindVideo, descriptor.ContentKind)
	require.NotNil(t, descriptor.DurationSeconds)
	assert.Equal(t, int64(212), *descriptor.DurationSeconds)
	assert.Equal(t, []string{"360p", "480p", "720p"}, descriptor.AvailableQualities)
	assert.Equal(t, "/api/youtube/download/dQw4w9WgXcQ/video", descriptor.AssetLocator)
}

func TestMetadataClient_SendsContentTypeHint(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type":         "Photo",
			"thumbnail":    "https://scontent.cdninstagram.com/p.jpg",
			"description":  "a photo",
			"download_url": "/api/instagram/download/Abc123/photo",
		})
	}))
	defer server.Close()

	client := NewMetadataClient(server.URL, nil, nil)
	descriptor, err := client.FetchMetadata(context.Background(), domain.PlatformInstagram, "https://www.instagram.com/p/Abc123/", domain.KindPhoto)
	require.NoError(t, err)

	assert.Equal(t, "Photo", gotBody["contentType"])
	assert.Equal(t, domain.KindPhoto, descriptor.ContentKind)
	assert.Empty(t, descriptor.AvailableQualities)
}

func TestMetadataClient_ServerErrorWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewMetadataClient(server.URL, nil, nil)
	_, err := client.FetchMetadata(context.Background(), domain.PlatformYouTube, "https://www.youtube.com/watch?v=x", "")
	require.Error(t, err)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Status)
	assert.Equal(t, "rate limited", serverErr.Message)
}

func TestMetadataClient_ServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewMetadataClient(server.URL, nil, nil)
	_, err := client.FetchMetadata(context.Background(), domain.PlatformYouTube, "https://www.youtube.com/watch?v=x", "")
	require.Error(t, err)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
	assert.Equal(t, "metadata lookup failed", serverErr.Message)
}

func TestMetadataClient_NetworkError(t *testing.T) {
	// Point at a closed server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewMetadataClient(server.URL, nil, nil)
	_, err := client.FetchMetadata(context.Background(), domain.PlatformYouTube, "https://www.youtube.com/watch?v=x", "")
	require.Error(t, err)

	var networkErr *domain.NetworkError
	assert.ErrorAs(t, err, &networkErr)
}

func TestMetadataClient_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"video without qualities", `{"type":"Video","thumbnail":"t","description":"d","duration":10,"download_url":"/dl"}`},
		{"video without duration", `{"type":"Video","thumbnail":"t","description":"d","qualities":["720p"],"download_url":"/dl"}`},
		{"missing download_url", `{"type":"Photo","thumbnail":"t","description":"d"}`},
		{"unknown type", `{"type":"Story","thumbnail":"t","description":"d","download_url":"/dl"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewMetadataClient(server.URL, nil, nil)
			_, err := client.FetchMetadata(context.Background(), domain.PlatformYouTube, "https://www.youtube.com/watch?v=x", "")
			require.Error(t, err)

			var malformed *domain.MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestMetadataClient_BusyGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"Photo","thumbnail":"t","description":"d","download_url":"/dl"}`))
	}))
	defer server.Close()

	client := NewMetadataClient(server.URL, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := client.FetchMetadata(context.Background(), domain.PlatformInstagram, "https://www.instagram.com/p/x/", domain.KindPhoto)
		done <- err
	}()
	<-entered

	_, err := client.FetchMetadata(context.Background(), domain.PlatformInstagram, "https://www.instagram.com/p/x/", domain.KindPhoto)
	require.Error(t, err)
	var busyErr *domain.BusyError
	assert.ErrorAs(t, err, &busyErr)

	close(release)
	require.NoError(t, <-done)
}
