//go:build !windows && !linux

package hook

// NewSource reports that this platform has no global hook backend.
func NewSource(Options) (Source, error) {
	return nil, ErrUnsupported
}
