// Package pipeline builds handler pipelines from TOML or YAML descriptions.
//
// A description is a tree of stages under a top level "pipeline" key. Each
// stage names its kind and the options that kind reads; wrapping stages
// nest their inner stage under "next", cascades list theirs under
// "stages", URL maps under "mounts" and routers under "routes":
//
//	[pipeline]
//	kind = "logger"
//	out = "stderr"
//
//	[pipeline.next]
//	kind = "router"
//
//	[[pipeline.next.routes]]
//	method = "GET"
//	path = "/users/:id"
//	handler = { kind = "text", body = "user" }
//
// The kinds are kept in a registry so callers can add their own.
package pipeline
