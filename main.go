package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/series"
	"github.com/bitmark-inc/casecounts/store"
)

const initPrefix = "init"

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("casecounts")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("mongo.database", "casecounts")
	viper.SetDefault("mongo.pool", 10)
	viper.SetDefault("report.output", ".")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("metrics.interval", time.Minute)
}

func initSentry() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", initPrefix).Info("Initialized sentry")
}

// connectMongo initialise mongodb connections
func connectMongo(ctx context.Context) (store.MongoStore, error) {
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		return nil, fmt.Errorf("create mongo client with error: %w", err)
	}

	err = mongoClient.Connect(ctx)
	if nil != err {
		return nil, fmt.Errorf("connect mongo database with error: %w", err)
	}

	log.WithField("prefix", initPrefix).Info("Connected mongo database")
	return store.NewMongoStore(mongoClient, viper.GetString("mongo.database")), nil
}

func openORM() (*gorm.DB, error) {
	ormDB, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		return nil, err
	}
	log.WithField("prefix", initPrefix).Info("Connected population database")
	return ormDB, nil
}

func seriesOptions() (series.Options, error) {
	g, err := series.ParseGapFill(viper.GetString("series.gap_fill"))
	if err != nil {
		return series.Options{}, err
	}
	return series.Options{GapFill: g}, nil
}

// loadRegistry serves population figures from postgres when configured,
// from the csv tables otherwise. The returned func releases the database.
func loadRegistry() (population.Registry, func(), error) {
	if viper.GetString("orm.conn") != "" {
		ormDB, err := openORM()
		if err != nil {
			return nil, nil, err
		}
		return store.NewPopulationStore(ormDB), func() { _ = ormDB.Close() }, nil
	}

	tables, err := loadTables()
	if err != nil {
		return nil, nil, err
	}
	return tables, func() {}, nil
}

func loadTables() (population.Tables, error) {
	var tables population.Tables

	if path := viper.GetString("population.us"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return tables, err
		}
		defer f.Close()

		if tables.US, err = population.LoadUS(f, population.Columns{}); err != nil {
			return tables, fmt.Errorf("%s: %w", path, err)
		}
		log.WithFields(log.Fields{"prefix": initPrefix, "file": path, "rows": tables.US.Len()}).Info("Loaded state population")
	}

	if path := viper.GetString("population.world"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return tables, err
		}
		defer f.Close()

		if tables.World, err = population.LoadWorld(f, population.Columns{}); err != nil {
			return tables, fmt.Errorf("%s: %w", path, err)
		}
		log.WithFields(log.Fields{"prefix": initPrefix, "file": path, "rows": tables.World.Len()}).Info("Loaded country population")
	}

	return tables, nil
}

func main() {
	var configFile string

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Preparing to shutdown")
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:           "casecounts",
		Short:         "Daily case count series of the JHU CSSE reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig(configFile)
			initLog()
			initSentry()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config.yaml", "[optional] path of configuration file")

	rootCmd.AddCommand(
		newFetchCmd(),
		newReportCmd(),
		newServeCmd(),
		newImportPopulationCmd(),
	)

	err := rootCmd.ExecuteContext(ctx)
	sentry.Flush(2 * time.Second)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
