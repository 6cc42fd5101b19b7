// Command ghcrawler wires the crawler core (processor, handlers, store,
// queue) into a runnable service, in the style of
// relabs-tech/kurbisio/examples/basic: an envdecode'd config, a store
// opened once at startup, and a small gorilla/mux admin surface. The fetch
// layer (auth, transport, rate limiting) is out of this module's scope
// (spec.md §1 Non-goals); "run" wires construction and serves the admin
// surface for whatever external fetch workers are pushing into the queue.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/ghcrawler/core/handlers"
	"github.com/relabs-tech/ghcrawler/core/logger"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/queue/kafka"
	"github.com/relabs-tech/ghcrawler/core/queue/memory"
	"github.com/relabs-tech/ghcrawler/core/store"
	"github.com/relabs-tech/ghcrawler/core/store/postgres"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

func main() {
	logger.Init(logrus.InfoLevel)

	root := &cobra.Command{
		Use:   "ghcrawler",
		Short: "Content-addressed GitHub crawler core",
	}
	root.AddCommand(runCmd(), replayCmd())

	if err := root.Execute(); err != nil {
		logger.Default().Error(err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the store and queue, and serve the admin HTTP surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			st, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			reg := processor.NewRegistry()
			handlers.RegisterAll(reg)
			proc := processor.New(cfg.ProcessorVersion, reg)
			logger.Default().Infof("processor version %d ready, %d request types registered", proc.Version, len(reg.Types()))

			var stats queueStats
			if brokers := cfg.brokers(); len(brokers) > 0 {
				logger.Default().Infoln("wiring kafka queue:", brokers)
				q := kafka.New(brokers, cfg.KafkaTopicPrefix)
				defer q.Close()
			} else {
				logger.Default().Infoln("wiring in-memory queue")
				stats = memory.New()
			}

			router := newAdminRouter(st, stats)
			logger.Default().Infoln("admin surface listening on", cfg.AdminAddr)
			return http.ListenAndServe(cfg.AdminAddr, router)
		},
	}
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [urn]",
		Short: "Print the stored document at a URN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			st, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			doc, err := st.Get(cmd.Context(), urn.URN(args[0]))
			if err != nil {
				return err
			}
			if doc == nil {
				color.Red("no document stored at %s", args[0])
				return nil
			}
			color.Green("self:    %s", doc.SelfHref())
			color.Cyan("type:    %s", doc.Metadata.Type)
			color.Cyan("version: %d", doc.Metadata.Version)
			color.Cyan("fetched: %s", doc.Metadata.FetchedAt.Format(time.RFC3339))
			for role, link := range doc.Metadata.Links {
				fmt.Printf("  %-12s %s %s\n", role, link.Type, link.Href)
			}
			return nil
		},
	}
}

func openStore(cfg config) (store.Store, func(), error) {
	pg, err := postgres.Open(cfg.DatabaseSource, cfg.DatabasePassword, cfg.DatabaseSchema)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	cached, err := store.NewCached(pg, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("wrapping store with cache: %w", err)
	}
	return cached, func() { _ = pg.Close() }, nil
}
