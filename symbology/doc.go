// Package symbology provides the static symbol dictionary used to compose
// and resolve tactical symbol identification codes.
//
// A catalog is an immutable value built once from one or more YAML definition
// files (or the bundled default set). It describes symbology schemes, each
// containing named dimensions, each dimension listing hierarchical function
// definitions and two modifier vocabularies. Catalogs are never mutated after
// construction, so a single catalog can back any number of concurrent
// selection sessions without locking.
package symbology
