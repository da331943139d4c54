package capabilities

import "testing"

func TestRegistryLookup(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name     string
		mimeType string
		wantKind string
		wantOK   bool
	}{
		{name: "png via wildcard", mimeType: "image/png", wantKind: "image", wantOK: true},
		{name: "mp4 via wildcard", mimeType: "video/mp4", wantKind: "video", wantOK: true},
		{name: "exact document type", mimeType: "application/pdf", wantKind: "document", wantOK: true},
		{name: "case and whitespace normalized", mimeType: "  IMAGE/JPEG ", wantKind: "image", wantOK: true},
		{name: "unknown type", mimeType: "application/x-msdownload", wantOK: false},
		{name: "wildcard does not match bare prefix", mimeType: "image", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := registry.Lookup(tt.mimeType)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.mimeType, ok, tt.wantOK)
			}
			if ok && kind.Kind != tt.wantKind {
				t.Errorf("Lookup(%q) kind = %q, want %q", tt.mimeType, kind.Kind, tt.wantKind)
			}
		})
	}
}

func TestRegistryMaxSize(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	size, ok := registry.MaxSize("image/png")
	if !ok {
		t.Fatal("MaxSize(image/png) not accepted")
	}
	if size != 26214400 {
		t.Errorf("MaxSize(image/png) = %d, want %d", size, 26214400)
	}

	if _, ok := registry.MaxSize("font/woff2"); ok {
		t.Error("MaxSize(font/woff2) accepted, want rejected")
	}
}
