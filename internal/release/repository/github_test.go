package repository

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blankon/ghrs/internal/fakegithub"
	"github.com/blankon/ghrs/pkg/httputil"
)

func TestGitHubAPI_ReleasesURL(t *testing.T) {
	api := NewGitHubAPI("https://api.github.com/", "ghrs", 0)

	assert.Equal(t, "https://api.github.com/repos/AzureAD/microsoft-authentication-cli/releases?per_page=5",
		api.ReleasesURL("AzureAD", "microsoft-authentication-cli", 5))
	assert.Equal(t, "https://api.github.com/repos/octo/hello.go/releases?per_page=1",
		api.ReleasesURL("octo", "hello.go", 1))
}

func TestGitHubAPI_FetchReleases(t *testing.T) {
	server := fakegithub.NewServer()
	defer server.Close()
	require.NoError(t, server.HandleJSON("/repos/octo/hello/releases", http.StatusOK, []map[string]string{{"name": "v1.0"}}))

	api := NewGitHubAPI(server.URL, "ghrs", 0)
	body, err := api.FetchReleases(context.Background(), api.ReleasesURL("octo", "hello", 5))
	require.NoError(t, err)

	assert.Equal(t, `[{"name":"v1.0"}]`, string(body))
	require.Len(t, server.Requests(), 1)
	request := server.Requests()[0]
	assert.Equal(t, "/repos/octo/hello/releases?per_page=5", request.URI)
	assert.Equal(t, "ghrs", request.UserAgent)
	assert.Equal(t, "application/vnd.github+json", request.Accept)
}

func TestGitHubAPI_FetchReleasesNoAuthorization(t *testing.T) {
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	api := NewGitHubAPI(server.URL, "ghrs", 0)
	_, err := api.FetchReleases(context.Background(), api.ReleasesURL("octo", "hello", 5))
	require.NoError(t, err)
	assert.Empty(t, gotHeader.Get("Authorization"))
}

func TestGitHubAPI_FetchReleasesStatusError(t *testing.T) {
	server := fakegithub.NewServer()
	defer server.Close()

	api := NewGitHubAPI(server.URL, "ghrs", 0)
	_, err := api.FetchReleases(context.Background(), api.ReleasesURL("octo", "missing", 5))
	require.Error(t, err)

	var statusErr httputil.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Not Found")
}

func TestGitHubAPI_FetchLatestAndDownload(t *testing.T) {
	server := fakegithub.NewServer()
	defer server.Close()

	require.NoError(t, server.HandleJSON("/repos/blankon/ghrs/releases/latest", http.StatusOK, map[string]interface{}{
		"tag_name": "v0.2.0",
		"assets": []map[string]string{
			{"name": "ghrs-linux-amd64", "browser_download_url": server.URL + "/download/ghrs-linux-amd64"},
		},
	}))
	server.HandleBinary("/download/ghrs-linux-amd64", []byte("binary"))

	api := NewGitHubAPI(server.URL, "ghrs", 0)
	latest, err := api.FetchLatest(context.Background(), "blankon", "ghrs")
	require.NoError(t, err)
	require.Len(t, latest.Assets, 1)
	assert.Equal(t, "v0.2.0", latest.TagName)

	body, err := api.Download(context.Background(), latest.Assets[0].BrowserDownloadURL)
	require.NoError(t, err)
	defer body.Close()
	b, err := ioutil.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(b))
	assert.Equal(t, "application/octet-stream", server.Requests()[1].Accept)

	_, err = api.Download(context.Background(), server.URL+"/download/nothing")
	assert.Error(t, err)
}
