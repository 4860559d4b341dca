// Package testutil holds helpers shared by httpgraph's tests: temp files,
// an isolated XDG environment, canned handlers and request recording.
package testutil
