package capabilities

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry answers which media types uploads may carry and how large they
// may be. Loaded once from the embedded YAML file.
type Registry struct {
	kinds []MediaKind
	mu    sync.RWMutex
}

// NewRegistry creates a new media-type registry from the embedded config
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/mediatypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read media type config: %w", err)
	}

	var cfg mediaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media type config: %w", err)
	}
	if len(cfg.Kinds) == 0 {
		return nil, fmt.Errorf("media type config declares no kinds")
	}

	return &Registry{kinds: cfg.Kinds}, nil
}

// Lookup returns the media kind accepting the given MIME type
func (r *Registry) Lookup(mimeType string) (*MediaKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for i := range r.kinds {
		for _, accepted := range r.kinds[i].MimeTypes {
			if matchMime(accepted, mimeType) {
				return &r.kinds[i], true
			}
		}
	}
	return nil, false
}

// Allowed reports whether the given MIME type is accepted at all
func (r *Registry) Allowed(mimeType string) bool {
	_, ok := r.Lookup(mimeType)
	return ok
}

// MaxSize returns the size bound for the given MIME type; 0 = unbounded,
// false = type not accepted
func (r *Registry) MaxSize(mimeType string) (int64, bool) {
	kind, ok := r.Lookup(mimeType)
	if !ok {
		return 0, false
	}
	return kind.MaxSizeBytes, true
}

func matchMime(accepted, mimeType string) bool {
	if prefix, ok := strings.CutSuffix(accepted, "/*"); ok {
		return strings.HasPrefix(mimeType, prefix+"/")
	}
	return accepted == mimeType
}
