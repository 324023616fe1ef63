package commands

import (
	"github.com/chaisql/locationhistory/cmd/timeline/exportutil"
	"github.com/urfave/cli/v2"
)

// NewStatsCommand returns a cli.Command for "timeline stats".
func NewStatsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Summarize the content of an export",
		UsageText: `timeline stats [options] [Records.json]`,
		Flags:     readFlags(),
		Action: func(c *cli.Context) error {
			ropts, stop, err := readOptions(c)
			if err != nil {
				return err
			}
			defer stop()

			s, err := exportutil.ReadStats(c.Context, inputPath(c), ropts)
			if err != nil {
				return err
			}

			_, err = s.WriteTo(c.App.Writer)
			return err
		},
	}
}
