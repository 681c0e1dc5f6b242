package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	logger "github.com/metal3d/dartreorder/log"
	"github.com/metal3d/dartreorder/ordering"
	"github.com/spf13/cobra"
)

func buildCompletionCommand() *cobra.Command {
	noDocumentation := false
	bashv1Completion := false
	completionCmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Short:     "Generates completion scripts",
		Example:   fmt.Sprintf(strings.Join(completionExamples, "\n"), filepath.Base(os.Args[0])),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("shell type required")
			}
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				if bashv1Completion {
					return cmd.Root().GenBashCompletion(out)
				}
				return cmd.Root().GenBashCompletionV2(out, !noDocumentation)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell type %q", args[0])
			}
		},
	}
	completionCmd.Flags().BoolVar(
		&noDocumentation,
		"no-documentation", noDocumentation,
		"Do not include documentation")
	completionCmd.Flags().BoolVar(
		&bashv1Completion,
		"bashv1", bashv1Completion,
		"Use bash version 1 completion")

	return completionCmd
}

func buildMainCommand() *cobra.Command {

	cmd := cobra.Command{
		Use:     "dartreorder [flags] [file.dart|directory|stdin]",
		Short:   "dartreorder reorders the members of Dart classes.",
		Example: fmt.Sprintf(strings.Join(examples, "\n"), filepath.Base(os.Args[0])),
		Long:    fmt.Sprintf(usage, filepath.Base(os.Args[0])),
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeViper(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("You need to specify a command or an option")
		},
	}

	config := &ReorderConfig{
		Jobs:     runtime.NumCPU(),
		DefOrder: ordering.DefaultOrder,
	}
	reorderCommand := buildReorderCommand(config)
	cmd.AddCommand(reorderCommand)
	cmd.AddCommand(buildFeaturesCommand(config))
	cmd.AddCommand(buildPrintConfigCommand(config, reorderCommand))
	cmd.AddCommand(buildCompletionCommand())
	return &cmd
}

func buildPrintConfigCommand(config *ReorderConfig, reorderCommand *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "print-config",
		Short: "Print the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeViper(reorderCommand); err != nil {
				return err
			}
			return printConfigFile(config, cmd.OutOrStdout())
		},
	}
}

// setup validates the options and configures the logger.
func setup(config *ReorderConfig) error {
	if err := config.orderingConfig().Validate(); err != nil {
		return err
	}
	if config.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", config.Jobs)
	}
	if config.LogFile != "" {
		logger.SetFile(config.LogFile, 10, 3)
	}
	logger.SetVerbose(config.Verbose)
	return nil
}

func buildReorderCommand(config *ReorderConfig) *cobra.Command {
	reoderCommand := &cobra.Command{
		Use:          "reorder [flags] [file.dart|directory|stdin]",
		Short:        "Reorder constructors, variables, getters and methods of the classes in Dart source files.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !stdinPiped() {
				return errors.New("You should provide a file or a directory or stream content to stdin.")
			}
			if config.Check && config.Write {
				return errors.New("--check and --write cannot be used together")
			}
			if err := setup(config); err != nil {
				return err
			}
			return run(cmd, config, args...)
		},
	}

	reoderCommand.Flags().BoolVarP(
		&config.Write,
		"write", "w", config.Write,
		"Write result to (source) file instead of stdout")
	reoderCommand.Flags().BoolVarP(
		&config.Verbose,
		"verbose", "v", config.Verbose,
		"Verbose output")
	reoderCommand.Flags().BoolVarP(
		&config.MakeDiff,
		"diff", "d", config.MakeDiff,
		"Make a diff instead of rewriting the file")
	reoderCommand.Flags().BoolVarP(
		&config.Check,
		"check", "c", config.Check,
		"Exit with an error if a file would change")
	reoderCommand.Flags().BoolVar(
		&config.Color,
		"color", config.Color,
		"Colorize the diff output")
	reoderCommand.Flags().IntVarP(
		&config.Jobs,
		"jobs", "j", config.Jobs,
		"Number of files processed in parallel")
	reoderCommand.Flags().StringVar(
		&config.LogFile,
		"log-file", config.LogFile,
		"Write logs to this file, rotated at 10MB, instead of stderr")
	reoderCommand.Flags().BoolVar(
		&config.GroupGetters,
		"group-getters", config.GroupGetters,
		"Group the getters, sorted by name, before the other methods")
	reoderCommand.Flags().BoolVar(
		&config.SortMethods,
		"sort-methods", config.SortMethods,
		"Sort the other methods by name")
	reoderCommand.Flags().BoolVar(
		&config.SeparatePrivate,
		"separate-private", config.SeparatePrivate,
		"Move private methods to the private-other-methods position")
	reoderCommand.Flags().StringSliceVarP(
		&config.DefOrder,
		"order", "o", config.DefOrder,
		`Order of the members. You can omit some elements, they will be added at the end
in the default order. Allowed values are: `+strings.Join(ordering.DefaultOrder, ", "))
	return reoderCommand

}

func buildFeaturesCommand(config *ReorderConfig) *cobra.Command {
	featuresCommand := &cobra.Command{
		Use:          "features [flags] [file.dart|stdin]",
		Short:        "Print how the lines of each class body are classified.",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(config); err != nil {
				return err
			}
			filename, content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			lines, cerr := ordering.Classify(string(content), config.orderingConfig())
			fmt.Fprint(cmd.OutOrStdout(), renderFeatureTable(lines))
			if cerr != nil {
				return fmt.Errorf("%s: %w", filename, cerr)
			}
			return nil
		},
	}
	featuresCommand.Flags().BoolVar(
		&config.SeparatePrivate,
		"separate-private", config.SeparatePrivate,
		"Classify private methods apart")
	return featuresCommand
}
