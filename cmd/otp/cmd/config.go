package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Parameter file operations",
		Long:  `Commands for working with TOML parameter files`,
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigCheckCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a parameter file",
		Long: `Write a complete TOML parameter file holding the defaults, with any
parameter flags applied.`,
		Args: cobra.NoArgs,
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := params.config()
		if err != nil {
			return err
		}
		if output == "-" {
			return trackpad.EncodeConfig(cmd.OutOrStdout(), cfg)
		}

		f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		if err := trackpad.EncodeConfig(f, cfg); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s", output)
		return nil
	}
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.toml>",
		Short: "Validate a parameter file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := trackpad.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printSuccess(cmd.OutOrStdout(), "%s is valid (%s)", args[0], cfg.DisplayName())
			return nil
		},
	}
}
