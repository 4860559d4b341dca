// Package pattern converts between Sinatra-style path templates
// ("/users/:id/files/*") and the anchored regular expressions routers match
// requests with.
//
// Compile is used by the router; Decompile is used when rendering a route
// table to get a readable template back. Decompile only understands the
// shapes Compile produces and returns the expression text untouched for
// anything else.
package pattern
