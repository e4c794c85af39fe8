// Package filesystem routes all file access through a swappable afero backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active filesystem backend.
func API() afero.Afero {
	return backend
}

// SetOsFs points the backend at the real operating system filesystem.
func SetOsFs() {
	set(afero.NewOsFs())
}

// SetMemMapFs swaps in a volatile in-memory backend. Tests call this to
// keep cache and config writes out of the host filesystem.
func SetMemMapFs() {
	set(afero.NewMemMapFs())
}

func set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
