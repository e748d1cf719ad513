package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReleaseByTag verifies request headers, URL shape and payload decoding.
func TestReleaseByTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/voice-wise/voicewise/releases/tags/v1.2.3", r.URL.Path)
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		require.Equal(t, apiVersion, r.Header.Get("X-GitHub-Api-Version"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"tag_name": "v1.2.3",
			"html_url": "https://example.com/releases/v1.2.3",
			"published_at": "2026-08-30T12:00:00Z",
			"created_at": "2026-08-29T12:00:00Z",
			"assets": [
				{"name": "app.tar.gz", "url": "u", "browser_download_url": "b", "size": 7}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("secret", WithBaseURL(server.URL))

	release, err := client.ReleaseByTag(context.Background(), "voice-wise", "voicewise", "v1.2.3")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", release.TagName)
	require.Equal(t, "2026-08-30T12:00:00Z", release.PubDate())
	require.Len(t, release.AssetList(), 1)
	require.Equal(t, "app.tar.gz", release.AssetList()[0].Name)
}

// TestReleaseByTag_NoToken ensures no Authorization header is sent without a token.
func TestReleaseByTag_NoToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"created_at": "2026-08-29T12:00:00Z", "assets": []}`))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	release, err := client.ReleaseByTag(context.Background(), "o", "r", "v1.0.0")
	require.NoError(t, err)

	// created_at is the fallback publish date.
	require.Equal(t, "2026-08-29T12:00:00Z", release.PubDate())
	require.Empty(t, release.AssetList())
}

// TestReleaseByTag_Errors covers the upstream error contract.
func TestReleaseByTag_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		status  int
		body    string
		wantErr error
	}{
		"not found": {
			status:  http.StatusNotFound,
			body:    `{"message": "Not Found"}`,
			wantErr: ErrReleaseNotFound,
		},
		"rate limited": {
			status:  http.StatusForbidden,
			body:    `{"message": "rate limit"}`,
			wantErr: errRateLimited,
		},
		"server error": {
			status:  http.StatusBadGateway,
			body:    "",
			wantErr: errBadHTTPStatus,
		},
		"not json": {
			status: http.StatusOK,
			body:   "<html>maintenance</html>",
		},
		"missing publish date": {
			status:  http.StatusOK,
			body:    `{"assets": []}`,
			wantErr: ErrMissingPublishDate,
		},
		"missing assets": {
			status:  http.StatusOK,
			body:    `{"published_at": "2026-08-30T12:00:00Z"}`,
			wantErr: ErrMissingAssets,
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient("", WithBaseURL(server.URL))

			_, err := client.ReleaseByTag(context.Background(), "o", "r", "v1.0.0")
			require.Error(t, err)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

// TestDownloadAsset verifies raw byte downloads via the asset API endpoint.
func TestDownloadAsset(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/42", r.URL.Path)
		require.Equal(t, "application/octet-stream", r.Header.Get("Accept"))

		_, _ = w.Write([]byte("signature-bytes\n"))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	asset := &Asset{Name: "app.tar.gz.sig", URL: server.URL + "/assets/42"}

	body, err := client.DownloadAsset(context.Background(), asset)
	require.NoError(t, err)
	require.Equal(t, []byte("signature-bytes\n"), body)
}
