package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Perch/internal/core/csvio"
	"Perch/internal/core/drafts"
)

type rowReport struct {
	Line   int      `json:"line"`
	Issues []string `json:"issues"`
}

type csvReport struct {
	Rows    int         `json:"rows"`
	Valid   int         `json:"valid"`
	Invalid []rowReport `json:"invalid"`
}

func csvCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "csv",
		Short: "Work with CSV imports",
	}
	c.AddCommand(csvCheckCmd(g))
	return c
}

func csvCheckCmd(g *globalFlags) *cobra.Command {
	var (
		account       string
		requireFuture bool
	)

	c := &cobra.Command{
		Use:   "check <file>",
		Short: "Report which rows of a CSV file would be skipped on import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := g.location()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			rows, err := csvio.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			opts := drafts.Options{RequireFuture: requireFuture, Location: loc, Now: time.Now}
			report := csvReport{Rows: len(rows), Invalid: []rowReport{}}
			for _, row := range rows {
				if issues := drafts.Validate(row.Draft(account), opts); len(issues) > 0 {
					report.Invalid = append(report.Invalid, rowReport{Line: row.Line, Issues: issues})
					continue
				}
				report.Valid++
			}

			out := cmd.OutOrStdout()
			if g.asJSON {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				for _, r := range report.Invalid {
					for _, issue := range r.Issues {
						fmt.Fprintf(out, "line %d: %s\n", r.Line, issue)
					}
				}
				fmt.Fprintf(out, "%d of %d rows valid\n", report.Valid, report.Rows)
			}

			if len(report.Invalid) > 0 {
				return errInvalid
			}
			return nil
		},
	}

	c.Flags().StringVarP(&account, "account", "a", "import", "Account id the rows would be imported under")
	c.Flags().BoolVar(&requireFuture, "require-future", false, "Reject rows whose posting time has passed")
	return c
}
