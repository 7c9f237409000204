// Package platform identifies the operating system family a run is targeting.
// The value is chosen once at startup and passed down explicitly so that every
// platform branch of the engine can be exercised from tests on any host.
package platform

import "runtime"

// Platform selects the key-derivation parameters and the legacy decryption
// fallback used for a browser profile.
type Platform int

const (
	Unknown Platform = iota
	Darwin
	Windows
	Linux
)

// Current returns the Platform matching the host operating system.
func Current() Platform {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	case "linux":
		return Linux
	}
	return Unknown
}

func (p Platform) String() string {
	switch p {
	case Darwin:
		return "darwin"
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	}
	return "unknown"
}
