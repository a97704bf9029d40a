package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
	"Perch/internal/core/recurrence"
)

func expandCmd(g *globalFlags) *cobra.Command {
	var (
		at     string
		repeat string
		count  int
	)

	c := &cobra.Command{
		Use:   "expand",
		Short: "Print the occurrence times a recurring post would get",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := g.location()
			if err != nil {
				return err
			}
			when, err := drafts.ParseScheduledAt(at, loc)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}

			occurrences := recurrence.Expand(posts.Post{ScheduledAt: when}, recurrence.ParseCadence(repeat), count)

			out := cmd.OutOrStdout()
			if g.asJSON {
				times := make([]string, 0, len(occurrences))
				for _, o := range occurrences {
					times = append(times, o.ScheduledAt.Format(time.RFC3339))
				}
				return printJSON(out, map[string]interface{}{"occurrences": times})
			}
			for _, o := range occurrences {
				fmt.Fprintln(out, o.ScheduledAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	c.Flags().StringVar(&at, "at", "", "Time of the first occurrence (required)")
	c.Flags().StringVarP(&repeat, "repeat", "r", "none", "none, daily, weekly or monthly")
	c.Flags().IntVarP(&count, "count", "n", 1, "Number of occurrences (1-30)")
	_ = c.MarkFlagRequired("at")
	return c
}
