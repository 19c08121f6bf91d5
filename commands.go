package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/casecounts/api"
	"github.com/bitmark-inc/casecounts/cache"
	"github.com/bitmark-inc/casecounts/consts"
	"github.com/bitmark-inc/casecounts/crawler"
	"github.com/bitmark-inc/casecounts/external/jhu"
	"github.com/bitmark-inc/casecounts/metrics"
	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/report"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/series"
	"github.com/bitmark-inc/casecounts/store"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func newFetchCmd() *cobra.Command {
	var (
		resume      bool
		pruneBefore string
		refreshDays int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the daily reports and store their observations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			from, err := parseDate(viper.GetString("jhu.start"))
			if err != nil {
				return fmt.Errorf("jhu.start: %w", err)
			}
			prune, err := parseDate(pruneBefore)
			if err != nil {
				return fmt.Errorf("prune-before: %w", err)
			}

			mongoStore, err := connectMongo(ctx)
			if err != nil {
				return err
			}
			defer mongoStore.Close()

			scope, closer := metrics.NewScope("", viper.GetDuration("metrics.interval"))
			defer closer.Close()

			var (
				fetcher     jhu.Fetcher = jhu.New(viper.GetString("jhu.url"), nil)
				reportCache *cache.ReportCache
			)
			if path := viper.GetString("cache.path"); path != "" {
				reportCache, err = cache.Open(path)
				if err != nil {
					return err
				}
				defer reportCache.Close()

				cached := cache.NewFetcher(reportCache, fetcher, scope)
				if refreshDays > 0 {
					cached.RefreshFrom(series.Day(time.Now()).AddDate(0, 0, -refreshDays))
				}
				fetcher = cached
			}

			c := crawler.NewReportCrawler(mongoStore, fetcher, crawler.Options{From: from, Resume: resume}, scope)
			if err := c.Run(ctx); err != nil {
				return err
			}

			if reportCache != nil {
				n, err := reportCache.Count(ctx)
				if err != nil {
					return err
				}
				scope.Gauge("reports.cache_size").Update(float64(n))
				log.WithFields(log.Fields{"prefix": "cron", "reports": n}).Info("report cache size")
			}

			if !prune.IsZero() {
				n, err := mongoStore.DeleteObservationsBefore(prune)
				if err != nil {
					return err
				}
				log.WithFields(log.Fields{"prefix": "cron", "before": pruneBefore, "deleted": n}).Info("prune observations")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&resume, "resume", false, "start from the latest stored report date")
	cmd.Flags().IntVar(&refreshDays, "refresh-days", 0, "download the reports of the last days again even when cached")
	cmd.Flags().StringVar(&pruneBefore, "prune-before", "", "delete observations reported before this date (YYYY-MM-DD)")

	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Export the country and state comparison datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := seriesOptions()
			if err != nil {
				return err
			}

			mongoStore, err := connectMongo(cmd.Context())
			if err != nil {
				return err
			}
			defer mongoStore.Close()

			registry, release, err := loadRegistry()
			if err != nil {
				return err
			}
			defer release()

			paths, err := report.Generate(mongoStore.Observations, registry, opts, viper.GetString("report.output"), []report.Comparison{
				{File: report.CountryFile, Units: consts.DefaultCountries},
				{File: report.StateFile, Units: consts.DefaultStates},
			})
			for _, p := range paths {
				log.WithFields(log.Fields{"prefix": "report", "file": p}).Info("exported")
			}
			return err
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve reconstructed series over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := seriesOptions()
			if err != nil {
				return err
			}

			mongoStore, err := connectMongo(cmd.Context())
			if err != nil {
				return err
			}
			defer mongoStore.Close()

			registry, release, err := loadRegistry()
			if err != nil {
				return err
			}
			defer release()

			server := api.NewServer(mongoStore, registry, opts)
			log.WithField("prefix", initPrefix).Info("Initialized http server")

			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				log.Info("Shutdown api server")
				if err := server.Shutdown(ctx); err != nil {
					log.Error("Server Shutdown:", err)
				}
			}()

			err = server.Run(":" + viper.GetString("server.port"))
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}
}

func newImportPopulationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-population",
		Short: "Import the population tables into the population database",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables()
			if err != nil {
				return err
			}

			ormDB, err := openORM()
			if err != nil {
				return err
			}
			defer ormDB.Close()

			if err := ormDB.AutoMigrate(&schema.PopulationFigure{}).Error; err != nil {
				return err
			}

			populationStore := store.NewPopulationStore(ormDB)
			for _, t := range []*population.Table{tables.US, tables.World} {
				if t == nil {
					continue
				}
				n, err := populationStore.ImportPopulation(t.Figures())
				if err != nil {
					return err
				}
				log.WithFields(log.Fields{"prefix": "orm", "source": t.Source, "rows": n}).Info("import population")
			}
			return nil
		},
	}
}
