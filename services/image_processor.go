package services

import "context"

// ImageProcessor is the external image-processing collaborator: it returns
// a re-encoded byte buffer (and possibly a new content type) for an input
// buffer. Compression heuristics live entirely behind this interface.
type ImageProcessor interface {
	Process(ctx context.Context, data []byte, contentType string) ([]byte, string, error)
}

// PassthroughProcessor returns the input unchanged. It is the default when
// no re-encoding service is configured.
type PassthroughProcessor struct{}

func (PassthroughProcessor) Process(_ context.Context, data []byte, contentType string) ([]byte, string, error) {
	return data, contentType, nil
}
