package types

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
)

// DetectPlatform maps a GOOS value onto the release platform enum.
func DetectPlatform(goos string) (Platform, error) {
	switch goos {
	case "windows":
		return PlatformWindows, nil
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformMacOS, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported platform: " + goos)
	}
}
