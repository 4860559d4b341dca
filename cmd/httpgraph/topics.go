package httpgraph

import "embed"

// helpTopics are the documents behind 'httpgraph help <topic>'.
//
//go:embed topics/*.md
var helpTopics embed.FS
