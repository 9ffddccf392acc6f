package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMaterializeCommand creates the materialize command.
func NewMaterializeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize",
		Short: "Create today's study sessions for every due topic",
		Long: `Create today's study sessions for every due topic.

Running it more than once a day is harmless: topics that already have a
session today are left alone.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.service.MaterializeToday(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessions materialized")
			return nil
		},
	}
}
