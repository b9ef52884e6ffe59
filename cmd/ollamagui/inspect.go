package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ollamagui/internal/service"
)

func newLocateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Resolve the Ollama backend and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			svc := service.FromConfig(cmd.Context(), cfg, nil, log)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(svc.Locate(cmd.Context()))
		},
	}
}

func newCategoriesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Fetch the remote catalog and print the size of each category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res := service.FromConfig(cmd.Context(), cfg, nil, log).WebModels(cmd.Context())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "popular\t%d\n", len(res.Categories.Popular))
			fmt.Fprintf(tw, "new\t%d\n", len(res.Categories.New))
			fmt.Fprintf(tw, "code\t%d\n", len(res.Categories.Code))
			fmt.Fprintf(tw, "chat\t%d\n", len(res.Categories.Chat))
			fmt.Fprintf(tw, "total\t%d\n", res.TotalModels)
			fmt.Fprintf(tw, "installed\t%d\n", len(res.InstalledModels))
			return tw.Flush()
		},
	}
}
