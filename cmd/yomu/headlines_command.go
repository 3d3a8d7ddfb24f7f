// ABOUTME: headlines subcommand lists the latest articles of a source
// ABOUTME: Output is a table of publication time, title and link

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHeadlinesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "headlines <source>",
		Short: "List the latest articles of a source (nhk-easy, yasashii-news)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Headlines(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(resp.Headlines))
			for _, h := range resp.Headlines {
				published := ""
				if h.Published != nil {
					published = h.Published.Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{published, h.Title, h.Link})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Published", "Title", "Link"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of headlines")
	return cmd
}
