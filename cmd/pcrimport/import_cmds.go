package main

import (
	"github.com/spf13/cobra"
)

func newDetectCmd(opts *options) *cobra.Command {
	in := &importOptions{}
	cmd := &cobra.Command{
		Use:     "detect <file>",
		Short:   "Recognize the instrument format of an export",
		Args:    cobra.ExactArgs(1),
		Example: "  pcrimport detect run_20240315.xlsx --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			req, err := in.request(args[0])
			if err != nil {
				return err
			}
			result, err := c.UseCase.Detect(commandContext(cmd), req)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), result)
			}
			renderDetection(cmd.OutOrStdout(), result)
			return nil
		},
	}
	in.register(cmd, false)
	return cmd
}

func newExtractCmd(opts *options) *cobra.Command {
	in := &importOptions{}
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract well, sample, target and Ct rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			req, err := in.request(args[0])
			if err != nil {
				return err
			}
			report, err := c.UseCase.Extract(commandContext(cmd), req)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderReportHeader(cmd.OutOrStdout(), report)
			renderRows(cmd.OutOrStdout(), report.Rows)
			return nil
		},
	}
	in.register(cmd, false)
	return cmd
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	in := &importOptions{}
	cmd := &cobra.Command{
		Use:     "analyze <file>",
		Short:   "Extract rows and evaluate well pairs of the plate",
		Args:    cobra.ExactArgs(1),
		Example: "  pcrimport analyze PLATE12_20240315.xlsx --map plate12.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			req, err := in.request(args[0])
			if err != nil {
				return err
			}
			report, err := c.UseCase.Process(commandContext(cmd), req)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderReportHeader(cmd.OutOrStdout(), report)
			renderPairs(cmd.OutOrStdout(), report)
			return nil
		},
	}
	in.register(cmd, true)
	return cmd
}
