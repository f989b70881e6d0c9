package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/spf13/cobra"
)

// options holds flags shared across all commands.
type options struct {
	configPath string
	cwd        string
	workspace  []string
	scriptDir  string
	query      string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "finditfaster",
		Short:         "Find files and text with fzf, rg and bat",
		Long:          "finditfaster runs fzf, rg and bat in a dedicated terminal session and opens the files you pick.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default ~/.config/finditfaster/config.json or config.toml)")
	flags.StringVar(&opts.cwd, "cwd", "", "working directory searched by default (default: current directory)")
	flags.StringArrayVar(&opts.workspace, "workspace", nil, "workspace root, as a path or file:// URI (repeatable; default: enclosing git repository)")
	flags.StringVar(&opts.scriptDir, "scripts", "", "directory holding the helper scripts")
	flags.StringVarP(&opts.query, "query", "q", "", "initial query handed to fzf")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "ui",
			Short: "Open the interactive menu (the default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runUI(cmd.Context(), opts, stderr)
			},
		},
		searchCmd("find-files", "Fuzzy search file names", command.FindFiles, opts, stdout, stderr),
		searchCmd("find-within-files", "Fuzzy search file contents", command.FindWithinFiles, opts, stdout, stderr),
		searchCmd("list-search-locations", "Show which paths are searched and why", command.ListSearchLocations, opts, stdout, stderr),
		&cobra.Command{
			Use:   "flight-check",
			Short: "Verify that bat, fzf and rg are installed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runFlightCheck(cmd.Context(), opts, stdout, stderr)
			},
		},
		configCmd(opts, stdout),
	)
	return root
}

func searchCmd(use, short string, id command.ID, opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [query]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := opts.query
			if len(args) > 0 {
				query = strings.Join(args, " ")
			}
			return runOneShot(cmd.Context(), opts, id, query, stdout, stderr)
		},
	}
}

func configCmd(opts *options, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print the effective settings and check them",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runConfigPrint(opts, stdout)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings files that are read, in order",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				for _, p := range config.NewLoader(opts.configPath).Candidates() {
					fmt.Fprintln(stdout, p)
				}
				return nil
			},
		},
	)
	return cmd
}

func runConfigPrint(opts *options, stdout io.Writer) error {
	loader := config.NewLoader(opts.configPath)
	settings, err := loader.LoadSettings()
	if err != nil {
		return err
	}
	for _, p := range loader.Candidates() {
		state := "missing"
		if _, err := os.Stat(p); err == nil {
			state = "found"
		} else if !errors.Is(err, os.ErrNotExist) {
			state = err.Error()
		}
		fmt.Fprintf(stdout, "# %s (%s)\n", p, state)
	}
	fmt.Fprint(stdout, config.Describe(settings))
	_, err = config.Resolve(settings)
	return err
}
