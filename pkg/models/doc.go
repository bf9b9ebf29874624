// Package models provides shared data models and types for shed.
//
// This package contains the descriptor vocabulary that is used across
// multiple packages in the shed codebase: input references, platforms,
// toolchain selections, and hook names.
//
// # Input References
//
// An [InputRef] is a named, version-pinned external source of packages
// or tooling. Inputs are declared once and never mutated; the resolver
// treats them as immutable pins.
//
// # Platforms
//
// Shells are built for exactly one target platform. Supported platforms
// can be queried:
//
//	platforms := models.SupportedPlatforms() // ["linux-x86_64", ...]
//	ok := models.PlatformLinuxAMD64.IsValid()
//
// # Toolchains
//
// A [ToolchainConfig] binds a toolchain channel and version to a declared
// input and lists optional extension components (for example an analyzer
// or a source formatter) that are materialized alongside the compiler.
//
// # Hooks
//
// A [HookName] identifies a pre-commit check. The recognized hook set is
// static; unrecognized names are rejected at load time:
//
//	hooks := models.KnownHooks() // ["formatter", "linter", ...]
package models
