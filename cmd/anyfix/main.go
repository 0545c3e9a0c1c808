// Package main provides the entry point for the anyfix CLI.
//
// anyfix prints a fixed catalog of line-level replacements for overly
// permissive `any` annotations in a TypeScript web app, and can check that
// catalog against a checkout of that app.
//
// Usage:
//
//	anyfix
//	anyfix verify --root ../web
//
// See --help for all available options.
package main

// main is the entry point for anyfix.
func main() {
	Execute()
}
