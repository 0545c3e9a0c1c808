// Package model defines the core data structures used throughout anyfix.
//
// This package contains the following main types:
//   - FixRecord: One suggested line replacement in a target source file
//   - Catalog: The ordered, immutable collection of fix records
//   - ValidationError: The fail-fast error for a malformed record
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The catalog, report, verify and database packages all need
// these types, so centralizing them prevents import cycles.
//
// The models are serializable to JSON and YAML for report output and catalog
// files.
package model
