package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"topreparateurs/internal/config"

	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func fakeS3(t *testing.T, headStatus int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(headStatus)
		case http.MethodPut:
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func newTestStorage(t *testing.T, endpoint string) *MinioEvidenceStorage {
	t.Helper()
	s, err := NewMinioEvidenceStorage(config.EvidenceConfig{
		Endpoint:  endpoint,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "dispute-evidence",
		URLExpiry: 10 * time.Minute,
	}, "us-east-1")
	require.NoError(t, err)
	return s
}

func TestMinioEvidenceStorage_Upload(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	s := newTestStorage(t, strings.TrimPrefix(srv.URL, "http://"))

	err := s.Upload(context.Background(), "disputes/d-1/a.jpg", strings.NewReader("hello"), 5, "image/jpeg")
	require.NoError(t, err)

	reqs := requests()
	require.NotEmpty(t, reqs)
	last := reqs[len(reqs)-1]
	require.Equal(t, http.MethodPut, last.method)
	require.Equal(t, "/dispute-evidence/disputes/d-1/a.jpg", last.path)
}

func TestMinioEvidenceStorage_EnsureBucketExisting(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	s := newTestStorage(t, strings.TrimPrefix(srv.URL, "http://"))

	require.NoError(t, s.EnsureBucket(context.Background()))
	for _, r := range requests() {
		require.NotEqual(t, http.MethodPut, r.method, "bucket must not be recreated")
	}
}

func TestMinioEvidenceStorage_PresignedURL(t *testing.T) {
	s := newTestStorage(t, "minio.local:9000")

	raw, err := s.PresignedURL(context.Background(), "disputes/d-1/a.jpg")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "minio.local:9000", u.Host)
	require.Equal(t, "/dispute-evidence/disputes/d-1/a.jpg", u.Path)
	require.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
}

func TestNewMinioEvidenceStorage_DefaultExpiry(t *testing.T) {
	s, err := NewMinioEvidenceStorage(config.EvidenceConfig{Endpoint: "minio.local:9000", Bucket: "b"}, "us-east-1")
	require.NoError(t, err)
	require.Equal(t, defaultURLExpiry, s.expiry)
}
