package commands

import (
	"fmt"

	"github.com/chaisql/locationhistory/cmd/timeline/exportutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// NewIndexCommand returns a cli.Command for "timeline index".
func NewIndexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Store the positions of an export in a point store",
		UsageText: `timeline index --store DIR [options] [Records.json]`,
		Description: `The index command decodes an export once and keeps its positions in a
point store, ordered by time. Maps can then be drawn from the store with
"timeline render --store DIR", which is much faster than decoding the export.

Indexing the same export twice does not duplicate positions.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Usage:   "directory of the point store, created if needed",
				EnvVars: []string{"TIMELINE_STORE"},
			},
		}, readFlags()...),
		Action: func(c *cli.Context) error {
			store := c.String("store")
			if store == "" {
				return errors.New(c.Command.UsageText)
			}

			ropts, stop, err := readOptions(c)
			if err != nil {
				return err
			}
			defer stop()

			s, err := exportutil.Index(c.Context, inputPath(c), store, ropts)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, s)
			return nil
		},
	}
}
