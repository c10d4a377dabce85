package main

import (
	"context"
	"flag"
	"time"

	"ranksignal/internal/modkit"
	"ranksignal/internal/modkit/module"
	"ranksignal/internal/platform/config"
	"ranksignal/internal/platform/logger"
	"ranksignal/internal/platform/store"

	stdom "ranksignal/internal/services/staleness/domain"
	stmod "ranksignal/internal/services/staleness/module"
)

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Flags override the ANALYTICS_* environment defaults
	var (
		fDays   = flag.Int("days", 0, "staleness threshold in days (0 = config default)")
		fLimit  = flag.Int("limit", 0, "max domains to enqueue (0 = unlimited)")
		fDryRun = flag.Bool("dryrun", false, "plan the sweep but do not enqueue")
		fLoop   = flag.Bool("loop", false, "keep sweeping on an interval instead of exiting")
		fEvery  = flag.Duration("every", 24*time.Hour, "sweep interval in loop mode")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	sm := stmod.New(deps, stmod.FromConfig(root))
	module.Register(sm.Name(), sm.Ports())

	ports := module.MustPortsOf[stmod.Ports](sm)

	params := stdom.SweepParams{
		StalenessDays: *fDays,
		Limit:         *fLimit,
		DryRun:        *fDryRun,
	}

	sweep := func() {
		res, err := ports.Sweeper.Sweep(context.Background(), params)
		if err != nil {
			if !*fLoop {
				l.Fatal().Err(err).Msg("staleness sweep failed")
			}
			l.Error().Err(err).Msg("staleness sweep failed, will retry next interval")
			return
		}
		l.Info().Int("scanned", res.Scanned).Int("enqueued", res.Enqueued).Msg("nightly sweep complete")
	}

	sweep()
	if !*fLoop {
		return
	}
	tick := time.NewTicker(*fEvery)
	defer tick.Stop()
	for range tick.C {
		sweep()
	}
}
