package httpgraph

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Show how an HTTP handler pipeline is composed"
	MsgRenderShort     = "Render the handler tree of a pipeline"
	MsgWrappersShort   = "List the handler types httpgraph describes"
	MsgKindsShort      = "List the stage kinds of pipeline descriptions"
	MsgConfigShort     = "Print the effective configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Output
	MsgWrappersTitle = "Registered wrappers:"
	MsgKindsTitle    = "Stage kinds:"
	MsgVersionFormat = "httpgraph %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/httpgraph/config.toml)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml or xml"
	MsgFlagOutput   = "Write output to this file instead of standard output"
	MsgFlagColor    = "Color output: auto, always or never"
	MsgFlagStrict   = "Fail on duplicate wrapper registrations"
	MsgFlagSource   = "Print the pipeline description instead of rendering it"
	MsgFlagDefaults = "Print the commented default configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/wrappers-long.txt
	msgWrappersLongRaw string
	MsgWrappersLong    = strings.TrimSpace(msgWrappersLongRaw)

	//go:embed msgs/kinds-long.txt
	msgKindsLongRaw string
	MsgKindsLong    = strings.TrimSpace(msgKindsLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
