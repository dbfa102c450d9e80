//go:build !windows

package output

import "os"

// enableANSI reports whether f renders escape sequences. Unix terminals do by
// default.
func enableANSI(f *os.File) bool {
	return true
}
