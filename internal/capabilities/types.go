package capabilities

// MediaKind describes one class of accepted uploads
type MediaKind struct {
	// Kind is the logical media class (image, video, audio, document)
	Kind string `yaml:"kind"`

	// MimeTypes lists the accepted MIME types for this kind. A trailing
	// "/*" accepts the whole top-level type.
	MimeTypes []string `yaml:"mime_types"`

	// MaxSizeBytes bounds a single payload of this kind; 0 = no bound
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

// mediaConfig is the shape of the embedded YAML file
type mediaConfig struct {
	Kinds []MediaKind `yaml:"kinds"`
}
