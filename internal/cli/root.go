// Package cli implements perchctl, an offline companion to the server: the
// same validation and recurrence rules, run against flags and files.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

// errInvalid makes the process exit non-zero after the issues were printed
var errInvalid = errors.New("validation failed")

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	timezone string
	asJSON   bool
}

func (g *globalFlags) location() (*time.Location, error) {
	loc, err := time.LoadLocation(g.timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}
	return loc, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "perchctl",
		Short:         "Check drafts, recurrences and CSV imports without a server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.timezone, "tz", "UTC", "IANA zone for datetimes without an offset")
	cmd.PersistentFlags().BoolVar(&g.asJSON, "json", false, "print machine-readable JSON")

	cmd.AddCommand(validateCmd(g))
	cmd.AddCommand(expandCmd(g))
	cmd.AddCommand(csvCmd(g))
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
