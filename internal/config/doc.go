// Package config provides configuration loading, merging, and validation
// facilities for the vault client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for every non-zero field):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the merged raw view and
// [GetClientConfig] for the validated client configuration.
package config
