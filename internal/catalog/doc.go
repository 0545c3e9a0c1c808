// Package catalog provides the fix catalog that anyfix reports on.
//
// The built-in catalog is a hand-curated table of line replacements that
// narrow `any` type annotations in the web app to specific types. The line
// numbers were accurate when the table was written; nothing here re-checks
// them (see the verify package for that).
//
// A catalog can also be loaded from a YAML file with the same shape:
//
//	fixes:
//	  - file: apps/web/src/app/page.tsx
//	    line: 190
//	    before: "                {blogs.map((blog: any) => ("
//	    after: "                {blogs.map((blog: Blog) => ("
package catalog
