// Package registry provides a generic, thread-safe, name-keyed registry.
// It backs the name-keyed half of the wrapper registry and the pipeline
// stage-kind table, both populated at startup.
package registry
