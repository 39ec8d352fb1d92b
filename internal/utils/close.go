package utils

import "io"

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer, e.g. response bodies already read.
func Close(c io.Closer) {
	_ = c.Close()
}
