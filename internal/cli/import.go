package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/studyplan/internal/excel"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	importCfg := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import study topics from an xlsx or csv file",
		Long: `Import study topics from an xlsx or csv file.

Each row holds a topic name, a description and a subject. Subjects that do
not exist yet are created. Rows that fail are reported and skipped.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			importCfg.FilePath = args[0]
			result, err := excel.ImportTopics(cmd.Context(), a.service, importCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d rows: %d topics created, %d subjects created, %d skipped\n",
				result.TotalProcessed, result.Created, result.SubjectsCreated, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  "+e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&importCfg.SheetName, "sheet", "", "sheet to import (first sheet by default)")
	cmd.Flags().IntVar(&importCfg.StartRow, "start-row", importCfg.StartRow, "first row to import, 1-based")

	return cmd
}
