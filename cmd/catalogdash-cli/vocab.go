package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List selectable tags, labels and promotion tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		v, err := a.catalog.FetchVocabulary(ctx)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), a.render.Failure(err))
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), a.render.Vocabulary(v))
		return nil
	},
}
