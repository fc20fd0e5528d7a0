package render

import "errors"

var (
	// ErrIndexOutOfRange is returned when a face references a vertex that
	// does not exist.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrBufferSize is returned when a framebuffer's pixel slice does not
	// hold exactly Width*Height pixels.
	ErrBufferSize = errors.New("framebuffer size mismatch")

	// ErrInvalidClipPlanes is returned for near <= 0 or near >= far.
	ErrInvalidClipPlanes = errors.New("invalid clip planes")

	// ErrUnsupportedFormat is returned for an unknown image or model format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ErrNoFrame is returned when drawing outside a Begin/End pair.
var ErrNoFrame = errors.New("no frame in progress")
