package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/wpm/internal/config"
	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/textlist"
	"github.com/verte-zerg/wpm/internal/typeracer"
)

var (
	fetchURL         string
	fetchTimeout     int
	fetchSkipInvalid bool
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-prompts [file]",
		Short: "Download texts from typeracerdata",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchURL, "url", typeracer.DefaultURL, "texts page URL")
	cmd.Flags().IntVar(&fetchTimeout, "timeout", defaultFetchTimeout, "request timeout in seconds")
	cmd.Flags().BoolVar(&fetchSkipInvalid, "skip-invalid", false, "skip rows that fail to parse")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, args []string) error {
	applyStringConfig(cmd, "url", &fetchURL, fileCfg.Fetch.URL)
	applyIntConfig(cmd, "timeout", &fetchTimeout, fileCfg.Fetch.Timeout)
	if fetchTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}

	outPath := config.DefaultPromptsPath()
	if fileCfg.Play.Prompts != nil && *fileCfg.Play.Prompts != "" {
		outPath = *fileCfg.Play.Prompts
	}
	if len(args) == 1 {
		outPath = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Info("Fetching prompts from", zap.String("url", fetchURL))
	fetcher := typeracer.Fetcher{Timeout: time.Duration(fetchTimeout) * time.Second}
	markup, err := fetcher.Fetch(ctx, fetchURL)
	if err != nil {
		return err
	}

	logger.Info("Parsing response", zap.Int("bytes", len(markup)))
	records, err := parseRecords(markup, fetchSkipInvalid, logger)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no prompts found at %s", fetchURL)
	}
	logger.Info(fmt.Sprintf("Successfully parsed %d prompts", len(records)))

	logger.Info("Writing prompts to", zap.String("path", outPath))
	return textlist.Save(outPath, records)
}

// parseRecords walks the table. With skipInvalid a bad row is logged and
// dropped, otherwise the first bad row aborts.
func parseRecords(markup string, skipInvalid bool, log *zap.Logger) ([]model.Record, error) {
	var records []model.Record
	row := 0
	for record, err := range typeracer.ParseTable(markup) {
		row++
		if err != nil {
			if !skipInvalid {
				return nil, fmt.Errorf("failed to parse row %d: %w", row, err)
			}
			log.Warn("Skipping row", zap.Int("row", row), zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
