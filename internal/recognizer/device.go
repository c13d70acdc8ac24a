package recognizer

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

// Availability probes are package variables so tests can fake hosts.
var (
	mpsAvailable = func() bool {
		return runtime.GOOS == "darwin"
	}
	cudaAvailable = func() bool {
		_, err := exec.LookPath("nvidia-smi")
		return err == nil
	}
)

// ValidDevice reports whether the device name is one the tool
// recognizes at all.
func ValidDevice(device string) bool {
	switch device {
	case "", "mps", "cuda", "cpu":
		return true
	}
	return false
}

// ResolveDevice validates the requested compute device against the
// host and falls back to cpu with a warning when it is not
// available. An unknown name is an error, not a fallback.
func ResolveDevice(requested string) (string, error) {
	switch requested {
	case "", "cpu":
		return "cpu", nil
	case "mps":
		if !mpsAvailable() {
			log.Printf("recognizer: mps requested but not available, falling back to cpu")
			return "cpu", nil
		}
		return "mps", nil
	case "cuda":
		if !cudaAvailable() {
			log.Printf("recognizer: cuda requested but not available, falling back to cpu")
			return "cpu", nil
		}
		return "cuda", nil
	default:
		return "", fmt.Errorf("unsupported device: %s (use mps, cuda, or cpu)", requested)
	}
}
