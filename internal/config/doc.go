// Package config loads runtime settings for the page host.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← PROTOBASE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(
//		config.WithFile("protobase.toml"),
//		config.WithEnv(os.LookupEnv),
//		config.WithOverride(func(c *config.Config) { c.Log.Level = "debug" }),
//	)
//
// A missing file is not an error; the remaining layers still apply.
// Watch reloads the file whenever it changes on disk.
package config
