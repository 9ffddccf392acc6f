package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/studyplan/pkg/models"
)

// NewDueCommand creates the due command.
func NewDueCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "due",
		Short:        "List the topics due for review today",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			topics, err := a.service.GetStudyTopicsForToday(cmd.Context())
			if err != nil {
				return err
			}
			printTopics(cmd.OutOrStdout(), topics)
			return nil
		},
	}
}

func printTopics(w io.Writer, topics []models.StudyTopic) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics due today")
		return
	}
	for _, t := range topics {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.SubjectName, t.Name)
	}
}
