package main

import (
	"fmt"

	"counsel-interview/pkg/promptset"

	"github.com/spf13/cobra"
)

func newTopicsCommand(envr environment, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Show the interview prompt set",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the ordered interview topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := envr.loadConfig(opts.configDir, opts.env)
			set, err := promptset.Load(cfg.Interview.PromptSet)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prompt set: %s\n", set.Name)
			for _, topic := range set.Topics {
				fmt.Fprintf(out, "%2d. %s\n", topic.ID, topic.Text)
			}
			fmt.Fprintf(out, "closing phrases: %v\n", set.ClosingPhrases)
			return nil
		},
	})
	return cmd
}
