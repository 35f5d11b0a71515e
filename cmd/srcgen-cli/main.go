package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-srcgen/pkg/logging"
	"github.com/goliatone/go-srcgen/pkg/orchestrator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:           "srcgen",
		Short:         "Generate typed source code from schema documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, nil)
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newTargetsCommand())
	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		source      string
		target      string
		output      string
		packageName string
		profile     string
		header      []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a source document into one target language",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var options []orchestrator.Option
			if profile != "" {
				options = append(options, orchestrator.WithNamingProfile(profile))
			}
			gen := orchestrator.New(options...)

			if target == "" {
				chosen, err := promptTarget(gen.Targets())
				if err != nil {
					return err
				}
				target = chosen
			}

			result, err := gen.Generate(ctx, orchestrator.Request{
				SourcePath:  source,
				Target:      target,
				PackageName: packageName,
				Header:      header,
			})
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), result.Output.Source)
				return nil
			}

			path := output
			if info, err := os.Stat(output); err == nil && info.IsDir() {
				path = filepath.Join(output, result.Filename)
			}
			if err := os.WriteFile(path, []byte(result.Output.Source), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "schema document path (required)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target language (prompts when omitted)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (stdout if empty)")
	cmd.Flags().StringVar(&packageName, "package", "", "package/module name override")
	cmd.Flags().StringVar(&profile, "naming-profile", "", "YAML naming profile path")
	cmd.Flags().StringArrayVar(&header, "header", nil, "header comment line (repeatable)")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the registered target languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := orchestrator.New()
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(gen.Targets(), "\n"))
			return nil
		},
	}
}

func promptTarget(targets []string) (string, error) {
	if len(targets) == 0 {
		return "", fmt.Errorf("no targets registered")
	}

	var chosen string
	prompt := &survey.Select{
		Message: "Target language:",
		Options: targets,
	}
	if err := survey.AskOne(prompt, &chosen); err != nil {
		return "", fmt.Errorf("select target: %w", err)
	}
	return chosen, nil
}
