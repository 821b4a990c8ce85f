// Package config provides persistent settings for fabdl.
//
// Settings are stored as a single JSON file. The core never reads
// environment variables; everything flows through explicit values here.
package config
