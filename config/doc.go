// Package config loads the YAML scenario configuration shared by the
// CLI and the runnable demos.
//
// Defaults are embedded in code. A config file overrides only the keys it
// sets: Load starts from Default, merges the file over it, and validates
// the result, so callers always receive a complete checked configuration.
package config
