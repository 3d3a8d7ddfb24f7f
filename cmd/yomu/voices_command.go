// ABOUTME: voices subcommand lists the Japanese voices of the speech backend
// ABOUTME: The configured default voice is marked with an asterisk

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the available speech voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c, err := ctx.client()
			if err != nil {
				return err
			}
			voices, err := c.Voices(cmd.Context())
			if err != nil {
				return fmt.Errorf("list voices: %w", err)
			}

			rows := make([][]string, 0, len(voices))
			for _, v := range voices {
				marker := ""
				if v.Name == cfg.Voice {
					marker = "*"
				}
				rows = append(rows, []string{marker, v.Name, v.Gender, strings.Join(v.LanguageCodes, ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Name", "Gender", "Languages"}, rows))
			return nil
		},
	}
}
