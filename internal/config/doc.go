// Package config provides configuration structures and utilities for simcheck.
// It defines the options of a comparison run, the per-language dictionary
// settings read from the .simcheck file, and report output preferences.
package config
