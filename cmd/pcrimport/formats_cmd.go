package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pcrimport/formats"
)

var errNoFormatsDB = errors.New("--formats-db or FORMATS_DB is required")

func newFormatsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "formats",
		Short:   "Inspect and manage the format registry",
		Aliases: []string{"format"},
	}

	list := &cobra.Command{
		Use:     "list",
		Short:   "List registered formats",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			descriptors := c.Registry.Descriptors()
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), descriptors)
			}
			renderFormats(cmd.OutOrStdout(), descriptors)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one format descriptor as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			d, err := c.Registry.MustGet(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}

	add := &cobra.Command{
		Use:   "add <file>",
		Short: "Store formats from a JSON or YAML file in the formats database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Store == nil {
				return errNoFormatsDB
			}

			ctx := commandContext(cmd)
			descriptors, err := formats.NewFileSource(args[0], c.Logger).Descriptors(ctx)
			if err != nil {
				return err
			}
			for _, d := range descriptors {
				if err := c.Store.Save(ctx, d); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", d.ID)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <id>",
		Short:   "Delete a format from the formats database",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Store == nil {
				return errNoFormatsDB
			}
			if err := c.Store.Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, add, remove)
	return cmd
}
