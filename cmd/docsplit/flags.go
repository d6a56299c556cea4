package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/docsplit/internal/config"
	"github.com/jonathan/docsplit/internal/document"
	"github.com/jonathan/docsplit/internal/fence"
)

// buildFlags holds the flag values shared by the build, dev and check
// commands. Each command owns its own instance so cobra flag state never
// leaks between subcommands.
type buildFlags struct {
	configPath  string
	source      string
	output      string
	manifest    string
	schema      string
	pythonRoot  string
	jsRoot      string
	extensions  []string
	concurrency int
	verbose     bool
}

func addConfigFlags(cmd *cobra.Command, f *buildFlags) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to docsplit.json config file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Documentation source tree root")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output tree root")
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "Path to the navigation manifest (docs.json)")
	cmd.Flags().StringVar(&f.schema, "schema", "", "Path to the manifest JSON Schema")
	cmd.Flags().StringVar(&f.pythonRoot, "python-root", "", "Output root segment for the python track")
	cmd.Flags().StringVar(&f.jsRoot, "js-root", "", "Output root segment for the javascript track")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "Source file extensions to process")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Parallel document workers (0 = number of CPUs)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed progress information")
}

// resolveConfig loads the optional config file, applies explicitly set flag
// overrides, merges defaults, and validates the result.
func resolveConfig(cmd *cobra.Command, f *buildFlags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Command-line args take priority; only override if the flag was
	// explicitly set.
	if cmd.Flags().Changed("source") {
		cfg.Source = f.source
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = f.output
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = f.manifest
	}
	if cmd.Flags().Changed("schema") {
		cfg.Schema = f.schema
	}
	if cmd.Flags().Changed("python-root") {
		cfg.PythonRoot = f.pythonRoot
	}
	if cmd.Flags().Changed("js-root") {
		cfg.JSRoot = f.jsRoot
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// tracksFor maps the configured track roots onto the fence tags.
func tracksFor(cfg config.Config) []document.Track {
	return []document.Track{
		{Tag: fence.TagPython, Root: cfg.PythonRoot},
		{Tag: fence.TagJS, Root: cfg.JSRoot},
	}
}
