package loader

import (
	"errors"
	"fmt"
)

// ErrNoItems is returned when the page was fetched but nothing survived extraction.
var ErrNoItems = errors.New("parser returned zero benefit items")

// UpstreamError reports a failed fetch of the source page. StatusCode is set
// for non-2xx responses; Err is set for transport failures and timeouts.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
