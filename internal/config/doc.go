// Package config holds anyfix configuration: defaults, CLI-derived settings
// and the optional .anyfix project file.
package config
