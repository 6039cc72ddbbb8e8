// Command process runs the roll sheet pipeline on local files without a
// database, writing the flat CSV and the xlsx dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ninjapark/rollsync/internal/config"
	"github.com/ninjapark/rollsync/internal/export"
	"github.com/ninjapark/rollsync/internal/logger"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/service"
)

func main() {
	var (
		rollPath    = flag.String("roll", "", "Path to the roll sheet HTML export (required)")
		rosterPath  = flag.String("roster", "", "Path to the roster HTML export (required)")
		csvPath     = flag.String("csv", "", "Write the flat table to this file (\"-\" for stdout)")
		xlsxPath    = flag.String("xlsx", "", "Write the dashboard workbook to this file")
		publish     = flag.Bool("publish", false, "Also publish the workbook to PUBLISH_PATH")
		policy      = flag.String("policy", "", "Yellow policy: day or advanced (default from YELLOW_POLICY)")
		layoutName  = flag.String("layout", "", "Layout variant: separated or padded (default from LAYOUT_VARIANT)")
		capacity    = flag.Int("capacity", 0, "Rows per group in the padded layout (default from LAYOUT_CAPACITY)")
		logLevel    = flag.String("log-level", "info", "Log level")
		publishPath = flag.String("publish-path", "", "Override PUBLISH_PATH")
	)
	flag.Parse()

	log := logger.SetupTo(os.Stderr, *logLevel, "pretty")

	if *rollPath == "" || *rosterPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: process -roll roll.html -roster roster.html [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.LoadPipeline()
	pipeline := service.NewPipelineService(cfg, log)

	roll, err := os.Open(*rollPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open roll sheet")
	}
	defer roll.Close()

	roster, err := os.Open(*rosterPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open roster")
	}
	defer roster.Close()

	res, err := pipeline.Process(context.Background(), roll, roster, model.RunOptions{
		YellowPolicy: *policy,
		Layout:       *layoutName,
		Capacity:     *capacity,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Processing failed")
	}

	log.Info().
		Int("roster", res.RosterCount).
		Int("roll_sheet", res.RollCount).
		Int("records", len(res.Records)).
		Int("days", len(res.Grids)).
		Msg("Processed")

	flat := service.FlatRecords(res.Records)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, flat); err != nil {
			log.Fatal().Err(err).Msg("CSV export failed")
		}
	}

	if *xlsxPath == "" && !*publish {
		return
	}

	dest := ""
	if *publish {
		dest = *publishPath
		if dest == "" {
			dest = config.Load().PublishPath
		}
	}
	if err := writeWorkbook(flat, res.Grids, *xlsxPath, dest); err != nil {
		log.Fatal().Err(err).Msg("Workbook export failed")
	}
	if *xlsxPath != "" {
		log.Info().Str("path", *xlsxPath).Msg("Workbook written")
	}
	if dest != "" {
		log.Info().Str("path", dest).Msg("Dashboard published")
	}
}

// writeWorkbook renders the dashboard once and saves it to xlsxPath and/or
// publishes it to publishPath. Empty paths are skipped.
func writeWorkbook(records []model.StudentRecord, grids []model.DayGrid, xlsxPath, publishPath string) error {
	wb, err := export.RenderWorkbook(records, grids)
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}
	defer wb.Close()

	if xlsxPath != "" {
		if err := wb.SaveAs(xlsxPath); err != nil {
			return fmt.Errorf("save %s: %w", xlsxPath, err)
		}
	}
	if publishPath != "" {
		if err := export.NewPublisher(publishPath).Publish(export.WorkbookSource(wb)); err != nil {
			return fmt.Errorf("%w; the previous dashboard was left unchanged", err)
		}
	}
	return nil
}

func writeCSV(path string, records []model.StudentRecord) error {
	if path == "-" {
		return export.WriteCSV(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
