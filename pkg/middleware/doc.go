// Package middleware holds the composition handlers pipelines are built
// from: an access Logger, a host and path URLMap, and a Cascade that tries
// handlers until one answers.
package middleware
