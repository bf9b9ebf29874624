package descriptor

import (
	"runtime"

	"github.com/modu-ai/shed/pkg/models"
)

// Default value constants to avoid magic strings.
const (
	DefaultChannel = models.ChannelStable
	DefaultRef     = "main"

	DefaultLogLevel = "info"
)

// DetectPlatform maps the running OS and architecture to a descriptor
// platform identifier. Returns "" when the host is not a supported
// target (for example windows).
func DetectPlatform() models.Platform {
	switch runtime.GOOS {
	case "linux":
		switch runtime.GOARCH {
		case "amd64":
			return models.PlatformLinuxAMD64
		case "arm64":
			return models.PlatformLinuxARM64
		}
	case "darwin":
		switch runtime.GOARCH {
		case "amd64":
			return models.PlatformDarwinAMD64
		case "arm64":
			return models.PlatformDarwinARM64
		}
	}
	return ""
}

// NewDefaultDescriptor returns a Descriptor with compiled defaults:
// no inputs, the host platform, a stable-channel toolchain bound to
// nothing, and every recognized hook disabled.
func NewDefaultDescriptor() *Descriptor {
	hooks := make(map[models.HookName]bool, len(models.KnownHooks()))
	for _, h := range models.KnownHooks() {
		hooks[h] = false
	}
	return &Descriptor{
		Platform: DetectPlatform(),
		Toolchain: models.ToolchainConfig{
			Channel: DefaultChannel,
		},
		Hooks: hooks,
	}
}
