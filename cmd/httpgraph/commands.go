package httpgraph

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/arthur-debert/httpgraph/internal/version"
	"github.com/arthur-debert/httpgraph/pkg/adapters"
	"github.com/arthur-debert/httpgraph/pkg/cobrax/topics"
	"github.com/arthur-debert/httpgraph/pkg/config"
	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/logging"
	"github.com/arthur-debert/httpgraph/pkg/pipeline"
	"github.com/arthur-debert/httpgraph/pkg/ui"
)

// app holds the flag values and the configuration they resolve to.
type app struct {
	verbosity int
	cfgFile   string
	format    string
	output    string
	color     string
	strict    bool

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "httpgraph",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			logging.SetupLogger(a.cfg.Log.Verbosity, a.cfg.Log.File)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.cfgFile, "config", "", MsgFlagConfig)
	flags.StringVarP(&a.format, "format", "f", "", MsgFlagFormat)
	flags.StringVarP(&a.output, "output", "o", "", MsgFlagOutput)
	flags.StringVar(&a.color, "color", "", MsgFlagColor)
	flags.BoolVar(&a.strict, "strict", false, MsgFlagStrict)

	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json", "yaml", "xml"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newWrappersCmd(a))
	rootCmd.AddCommand(newKindsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.Initialize(rootCmd, helpTopics, opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// load resolves the configuration, with flags the user set winning over
// files and the environment.
func (a *app) load(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("verbose") {
		overrides["log.verbosity"] = a.verbosity
	}
	if changed("format") {
		overrides["output.format"] = a.format
	}
	if changed("output") {
		overrides["output.file"] = a.output
	}
	if changed("color") {
		overrides["output.color"] = a.color
	}
	if changed("strict") {
		overrides["registry.strict"] = a.strict
	}

	cfg, err := config.Load(config.Options{File: a.cfgFile, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// registry returns the sealed registry of known wrappers.
func (a *app) registry() (*graph.Registry, error) {
	opts := []graph.RegistryOption{graph.WithLogger(logging.GetLogger("registry"))}
	if a.cfg.Registry.Strict {
		opts = append(opts, graph.WithStrictRegistration())
	}
	return adapters.NewRegistry(opts...)
}

// open returns the configured destination and the func that releases it.
func (a *app) open(cmd *cobra.Command) (io.Writer, func() error, error) {
	path := a.cfg.Output.File
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrOutputOpen, "cannot open %s", path).WithDetail("path", path)
	}
	return f, f.Close, nil
}

// renderer picks the renderer for w from the format and color settings.
func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	switch a.cfg.Output.Color {
	case "never":
		if format == ui.FormatAuto || format == ui.FormatTerminal {
			format = ui.FormatText
		}
	case "always":
		if format == ui.FormatAuto {
			format = ui.FormatTerminal
		}
		if lipgloss.ColorProfile() == termenv.Ascii {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	}
	return ui.NewRenderer(format, w)
}

// write runs fn against a renderer on the configured output.
func (a *app) write(cmd *cobra.Command, fn func(ui.Renderer) error) (err error) {
	w, closeOut, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeOut()) }()

	r, err := a.renderer(w)
	if err != nil {
		return err
	}
	return fn(r)
}

func newRenderCmd(a *app) *cobra.Command {
	var source bool

	cmd := &cobra.Command{
		Use:     "render [pipeline-file]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if source {
				return a.printSource(cmd, args)
			}

			var stage *pipeline.Stage
			if len(args) == 0 {
				stage = pipeline.Demo()
			} else if stage, err = pipeline.Load(args[0]); err != nil {
				return err
			}

			p, err := pipeline.NewBuilder().Build(stage)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, p.Close()) }()

			reg, err := a.registry()
			if err != nil {
				return err
			}
			return a.write(cmd, func(r ui.Renderer) error {
				return r.RenderTree(reg, p.Root)
			})
		},
	}

	cmd.Flags().BoolVar(&source, "source", false, MsgFlagSource)
	return cmd
}

func (a *app) printSource(cmd *cobra.Command, args []string) error {
	src := pipeline.DemoSource()
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, errors.ErrPipelineLoad, "cannot read %s", args[0]).WithDetail("path", args[0])
		}
		src = string(data)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), src)
	return err
}

func newWrappersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "wrappers",
		Short:   MsgWrappersShort,
		Long:    MsgWrappersLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			return a.write(cmd, func(r ui.Renderer) error {
				return r.RenderList(MsgWrappersTitle, reg.Keys())
			})
		},
	}
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "kinds",
		Short:   MsgKindsShort,
		Long:    MsgKindsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd, func(r ui.Renderer) error {
				return r.RenderList(MsgKindsTitle, pipeline.NewBuilder().Kinds())
			})
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			out, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Run != nil {
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return errors.New(errors.ErrNotFound, "help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
