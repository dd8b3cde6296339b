package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
	"github.com/padariaops/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// Result summarizes one ingestion run.
type Result struct {
	Files     int       `json:"files"`
	Rows      int       `json:"rows"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// Service pulls forecast CSVs (product_id,avg_daily_forecast) from object
// storage and upserts them into the forecast table.
type Service struct {
	storage   storage.ObjectStorage
	forecasts repository.ForecastRepository
	prefix    string
}

func NewService(objectStorage storage.ObjectStorage, forecasts repository.ForecastRepository, prefix string) *Service {
	return &Service{storage: objectStorage, forecasts: forecasts, prefix: prefix}
}

// Run ingests every CSV under the configured prefix. A malformed row is
// logged and skipped; a failed file aborts the run.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	objects, err := s.storage.ListObjects(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast objects: %w", err)
	}

	result := &Result{StartedAt: started}
	for _, object := range objects {
		if !strings.HasSuffix(strings.ToLower(object.Key), ".csv") {
			continue
		}

		rows, err := s.ingestFile(ctx, object.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest %s: %w", object.Key, err)
		}

		log.Info().Str("key", object.Key).Int("rows", rows).Msg("forecast file ingested")
		result.Files++
		result.Rows += rows
	}

	result.Duration = time.Since(started).String()
	return result, nil
}

func (s *Service) ingestFile(ctx context.Context, key string) (int, error) {
	reader, err := s.storage.OpenObject(ctx, key)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	rows, err := ParseForecastCSV(reader)
	if err != nil {
		return 0, err
	}

	if err := s.forecasts.UpsertForecasts(ctx, rows); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// ParseForecastCSV reads product_id,avg_daily_forecast rows. A header line is
// detected and skipped; malformed rows are skipped with a warning.
func ParseForecastCSV(r io.Reader) ([]domain.ForecastRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.ForecastRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read failed: %w", err)
		}

		line++
		if len(record) < 2 {
			log.Warn().Int("line", line).Msg("forecast csv: too few columns, skipping row")
			continue
		}

		productID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			log.Warn().Int("line", line).Str("value", record[0]).Msg("forecast csv: bad product id, skipping row")
			continue
		}

		forecast, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || forecast < 0 {
			log.Warn().Int("line", line).Str("value", record[1]).Msg("forecast csv: bad forecast value, skipping row")
			continue
		}

		rows = append(rows, domain.ForecastRow{
			ProductID:        productID,
			AvgDailyForecast: forecast,
		})
	}

	return rows, nil
}
