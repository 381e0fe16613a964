// Package registrytest provides an in-process pack registry for tests.
package registrytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nickagliano/hookplayer/internal/registry"
)

// IndexPath is where the fake registry serves its index.
const IndexPath = "/index.json"

// contentPrefix is the path the fake raw-content host is mounted under.
const contentPrefix = "/raw"

// Server serves an index, manifests, and sound files, and records every
// request path it receives.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	packs     []registry.Pack
	indexBody []byte
	files     map[string][]byte
	failures  map[string]int
	requests  []string
}

// NewServer starts a fake registry that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		files:    map[string][]byte{},
		failures: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AddPack registers a pack whose manifest is manifestJSON and whose sounds
// directory holds the given basename → content files.
func (s *Server) AddPack(name, manifestJSON string, sounds map[string]string) registry.Pack {
	p := registry.Pack{
		Name:        name,
		DisplayName: "Pack " + name,
		SourceRepo:  "packs/collection",
		SourceRef:   "main",
		SourcePath:  name,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.packs = append(s.packs, p)
	base := s.packPath(p)
	s.files[base+"/"+registry.ManifestFileName] = []byte(manifestJSON)
	for file, content := range sounds {
		s.files[base+"/sounds/"+file] = []byte(content)
	}
	return p
}

// SetIndexBody replaces the generated index with a raw body.
func (s *Server) SetIndexBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexBody = []byte(body)
}

// FailPath makes requests to urlPath answer with status.
func (s *Server) FailPath(urlPath string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[urlPath] = status
}

// SoundPath returns the request path of a pack's sound file.
func (s *Server) SoundPath(p registry.Pack, file string) string {
	return s.packPath(p) + "/sounds/" + file
}

// ManifestPath returns the request path of a pack's manifest.
func (s *Server) ManifestPath(p registry.Pack) string {
	return s.packPath(p) + "/" + registry.ManifestFileName
}

// Requests returns the request paths received so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// RegistryClient returns a registry client pointed at this server.
func (s *Server) RegistryClient() *registry.Client {
	return registry.NewClient(
		registry.WithHTTPClient(s.Client()),
		registry.WithIndexURL(s.URL+IndexPath),
		registry.WithContentBase(s.URL+contentPrefix),
	)
}

func (s *Server) packPath(p registry.Pack) string {
	return contentPrefix + "/" + p.SourceRepo + "/" + p.SourceRef + "/" + p.SourcePath
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Path)
	status, failing := s.failures[r.URL.Path]
	indexBody := s.indexBody
	packs := append([]registry.Pack{}, s.packs...)
	body, ok := s.files[r.URL.Path]
	s.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}

	if r.URL.Path == IndexPath {
		if indexBody == nil {
			indexBody, _ = json.Marshal(registry.Index{Packs: packs})
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(indexBody)
		return
	}

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write(body)
}
