package defs

// Common file names used across the project.
const (
	// DescriptorYAML is the environment descriptor file at the project root.
	DescriptorYAML = "shed.yaml"

	// LockYAML is the pin lockfile written next to the descriptor.
	LockYAML = "shed.lock"

	// PreCommitHook is the git hook file name installed by `shed hooks install`.
	PreCommitHook = "pre-commit"

	// GitDir is the git metadata directory at the project root.
	GitDir = ".git"

	// GitHooksSubdir is the hooks directory under .git.
	GitHooksSubdir = "hooks"
)

// Environment variables recognized by shed.
const (
	// EnvDescriptorPath overrides the descriptor file location.
	EnvDescriptorPath = "SHED_DESCRIPTOR"

	// EnvPlatform overrides the descriptor's target platform.
	EnvPlatform = "SHED_PLATFORM"

	// EnvLogLevel overrides the logging level.
	EnvLogLevel = "SHED_LOG_LEVEL"

	// EnvNoColor disables colored output when set to "true" or "1".
	EnvNoColor = "SHED_NO_COLOR"
)
