package commands

import (
	"context"
	"time"

	"github.com/chaisql/locationhistory/cmd/timeline/exportutil"
	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/chaisql/locationhistory/internal/input"
	"github.com/chaisql/locationhistory/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	sinceFlag   = "since"
	untilFlag   = "until"
	metricsFlag = "metrics-addr"
)

// readFlags returns the flags of the commands decoding an export.
func readFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  sinceFlag,
			Usage: "ignore entries recorded before this date or date-time",
		},
		&cli.StringFlag{
			Name:  untilFlag,
			Usage: "ignore entries recorded at or after this date or date-time",
		},
		&cli.StringFlag{
			Name:    metricsFlag,
			Usage:   "serve Prometheus metrics on this address while running",
			EnvVars: []string{"TIMELINE_METRICS_ADDR"},
		},
	}
}

// inputPath returns the export given as first argument, or stdin.
func inputPath(c *cli.Context) string {
	if p := c.Args().First(); p != "" {
		return p
	}
	return input.Stdin
}

// readOptions builds the read options from the flags. The returned function
// stops the metrics server, if any.
func readOptions(c *cli.Context) (exportutil.ReadOptions, func(), error) {
	r, err := filter.ParseRange(c.String(sinceFlag), c.String(untilFlag))
	if err != nil {
		return exportutil.ReadOptions{}, nil, err
	}

	opts := exportutil.ReadOptions{Range: r}
	addr := c.String(metricsFlag)
	if addr == "" {
		return opts, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts.Metrics = observability.NewMetrics(reg)

	srv := observability.StartMetricsServer(addr, reg)
	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("stopping metrics server")
		}
	}
	return opts, stop, nil
}
