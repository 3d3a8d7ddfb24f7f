// ABOUTME: Root cobra command and shared flags of the reader CLI
// ABOUTME: Subcommands share one lazily loaded configuration through commandContext

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var apiURLFlag string

	ctx := newCommandContext(&configFlag, &apiURLFlag)

	rootCmd := &cobra.Command{
		Use:           "yomu",
		Short:         "Read Japanese news with furigana and sentence audio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Yomu News API base URL")

	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newSentencesCommand(ctx))
	rootCmd.AddCommand(newVoicesCommand(ctx))
	rootCmd.AddCommand(newHeadlinesCommand(ctx))
	rootCmd.AddCommand(newPlayCommand(ctx))

	return rootCmd
}
