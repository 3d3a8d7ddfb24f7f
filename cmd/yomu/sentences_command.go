// ABOUTME: sentences subcommand prints an article's sentence segmentation
// ABOUTME: Each row shows the sentence index, paragraph and text or its kana reading

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSentencesCommand(ctx *commandContext) *cobra.Command {
	var kana bool

	cmd := &cobra.Command{
		Use:   "sentences <url>",
		Short: "List the sentences of an article as they are played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Sentences(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			heading := "Text"
			if kana {
				heading = "Reading"
			}
			rows := make([][]string, 0, len(resp.Sentences))
			for _, s := range resp.Sentences {
				body := s.Text
				if kana {
					body = s.Reading
				}
				rows = append(rows, []string{strconv.Itoa(s.Index), strconv.Itoa(s.Paragraph), body})
			}

			out := cmd.OutOrStdout()
			if resp.Title != "" {
				fmt.Fprintln(out, resp.Title)
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Para", heading}, rows, 0, 1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&kana, "kana", false, "Show readings instead of text")
	return cmd
}
