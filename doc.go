// File: treeline/config/doc.go

// Package config is a layered configuration manager. It loads
// structured configuration trees from files, embedded resources, and
// in-memory maps, merges them into a single consolidated tree, tracks
// which source every value came from, and writes modified values back
// to their originating file.
//
// Features:
//   - Layered loading: later patches override leaves but merge into
//     mappings, never replacing an existing mapping wholesale
//   - Provenance tracking: every changed path is indexed back to the
//     patch that produced it
//   - Write-back: SetValue edits both the consolidated tree and the
//     owning patch, and Save persists dirty file-backed patches
//   - __INCLUDE__ directives for composing nested sources at load time
//   - YAML, TOML and JSON sources with format auto-detection
//   - Environment and command-line overlays as ordinary patches
//   - Struct decoding of any section via mapstructure
//
// Quick start:
//
//	store, err := config.QuickFile("app.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	timeout := store.Value("server", "timeout", "30s")
//
//	prev, persistable, err := store.SetValue("server", "port", 9090)
//	if err == nil && persistable {
//	    store.Save()
//	}
//
// Stores assume a single owner on a single goroutine; callers needing
// shared access must serialize externally.
package config
