package commands

import (
	"fmt"

	"github.com/chaisql/locationhistory/cmd/timeline/exportutil"
	"github.com/chaisql/locationhistory/internal/config"
	"github.com/urfave/cli/v2"
)

// NewRenderCommand returns a cli.Command for "timeline render".
func NewRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Draw the positions of an export on maps",
		UsageText: `timeline render [options] [Records.json]`,
		Description: `The render command draws every position of an export as a cross coloured by
the local time of day, on one PNG image per view.

The export is read from the standard input if no file is given. Compressed
exports (gzip, zstd, s2) are detected automatically:

$ timeline render -o maps Records.json.gz

Views are read from a TOML file:

[[view]]
name = "stockholm"
width = 3840
height = 2160
lng_left = 17.7499
lng_right = 18.3808
lat_bottom = 59.2226

Positions can be drawn from a point store built by "timeline index" instead:

$ timeline render --store points.db`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory receiving the images (default: from the views file, or \"out\")",
				EnvVars: []string{"TIMELINE_OUTPUT"},
			},
			&cli.StringFlag{
				Name:    "views",
				Usage:   "TOML file listing the views to draw",
				EnvVars: []string{"TIMELINE_VIEWS"},
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "draw the points of this point store instead of reading an export",
				EnvVars: []string{"TIMELINE_STORE"},
			},
		}, readFlags()...),
		Action: func(c *cli.Context) error {
			cfg := config.Default()
			if path := c.String("views"); path != "" {
				var err error
				cfg, err = config.LoadFile(path)
				if err != nil {
					return err
				}
			}
			if out := c.String("output"); out != "" {
				cfg.Output = out
			}

			ropts, stop, err := readOptions(c)
			if err != nil {
				return err
			}
			defer stop()

			paths, err := exportutil.Render(c.Context, exportutil.RenderOptions{
				ReadOptions: ropts,
				Input:       inputPath(c),
				Store:       c.String("store"),
				Output:      cfg.Output,
				Views:       cfg.Views,
			})
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(c.App.Writer, p)
			}
			return nil
		},
	}
}
