package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Perch/internal/core/drafts"
)

func validateCmd(g *globalFlags) *cobra.Command {
	var (
		d             drafts.Draft
		media         string
		tags          string
		requireFuture bool
	)

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a draft the way the composer does",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := g.location()
			if err != nil {
				return err
			}
			d.MediaURLs = drafts.SplitList(media)
			d.Tags = drafts.SplitList(tags)

			issues := drafts.Validate(d, drafts.Options{
				RequireFuture: requireFuture,
				Location:      loc,
				Now:           time.Now,
			})

			out := cmd.OutOrStdout()
			if g.asJSON {
				if err := printJSON(out, map[string]interface{}{"issues": issues}); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintln(out, "OK")
			} else {
				for _, issue := range issues {
					fmt.Fprintf(out, "- %s\n", issue)
				}
			}

			if len(issues) > 0 {
				return errInvalid
			}
			return nil
		},
	}

	c.Flags().StringVar(&d.Text, "text", "", "Post text")
	c.Flags().StringVar(&d.ScheduledAt, "at", "", "Scheduled time, e.g. 2026-11-01T09:00")
	c.Flags().StringVarP(&d.AccountID, "account", "a", "", "Account id")
	c.Flags().StringVar(&media, "media", "", "Comma-separated media URLs")
	c.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	c.Flags().BoolVar(&requireFuture, "require-future", true, "Reject times that are not in the future")
	return c
}
