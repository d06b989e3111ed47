package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scrapeStates        []string
	scrapeMinPopulation int
	scrapeGeocoderKey   string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run the aggregation pipeline for one or more states",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if len(scrapeStates) == 0 {
			return fmt.Errorf("at least one --state is required")
		}

		minPopulation := scrapeMinPopulation
		if minPopulation == 0 {
			minPopulation = cfg.Scrape.MinPopulation
		}

		env, err := initPipeline(ctx, scrapeGeocoderKey)
		if err != nil {
			return err
		}
		defer env.Close()

		files, err := env.Pipeline.Run(ctx, scrapeStates, minPopulation)
		if err != nil {
			return err
		}

		zap.L().Info("scrape complete", zap.Int("artifacts", len(files)))
		for _, f := range files {
			fmt.Printf("%s\t%s\t%d bytes\n", f.Name, f.ContentType, f.Size)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&scrapeStates, "state", nil, "state name to process (repeatable)")
	scrapeCmd.Flags().IntVar(&scrapeMinPopulation, "min-population", 0, "population threshold (default from config)")
	scrapeCmd.Flags().StringVar(&scrapeGeocoderKey, "geocoder-key", "", "geocoding API key (default from config)")
	rootCmd.AddCommand(scrapeCmd)
}
