package sicontent

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aweris/sicontent/internal/digest"
)

// contentService is an in-memory stand-in for the content service.
type contentService struct {
	mu       sync.Mutex
	packages map[string]string // "<digest token>/<name token>" -> uri

	lookups atomic.Int32
	uploads atomic.Int32
}

func newContentService(t *testing.T) (*contentService, *httptest.Server) {
	t.Helper()
	s := &contentService{packages: make(map[string]string)}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *contentService) add(key PackageKey, uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[key.HashToken()+"/"+key.NameToken()] = uri
}

func (s *contentService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.EscapedPath()
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(path, packagesPath+"/"):
		s.lookups.Add(1)
		s.mu.Lock()
		uri, ok := s.packages[strings.TrimPrefix(path, packagesPath+"/")]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, uri)

	case r.Method == http.MethodPost && path == packagesPath:
		s.uploads.Add(1)
		f, h, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hash := r.Header.Get(DigestHeader)
		if digest.Sum(data) != hash {
			http.Error(w, "hash mismatch", http.StatusBadRequest)
			return
		}
		key := PackageKey{Name: h.Filename, Hash: hash}
		uri := "https://store/" + key.HashToken() + "/" + key.NameToken()
		s.add(key, uri)
		io.WriteString(w, uri)

	default:
		http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
	}
}
