package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/padariaops/backend-go/internal/ingest"
	"github.com/urfave/cli/v2"
)

func importProducts(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	rows, err := readCSV(c.String("file"))
	if err != nil {
		return err
	}

	imported := 0
	for i, record := range rows {
		if len(record) < 4 {
			log.Printf("products: line %d has too few columns, skipping", i+1)
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if i == 0 {
				continue // header
			}
			log.Printf("products: line %d has bad id %q, skipping", i+1, record[0])
			continue
		}

		name := strings.TrimSpace(record[1])
		isClassA := parseBool(record[2])
		orderable := parseBool(record[3])

		_, err = db.ExecContext(c.Context, `
            INSERT INTO products (id, name, is_class_a, orderable, created_at, updated_at)
            VALUES ($1, $2, $3, $4, NOW(), NOW())
            ON CONFLICT (id)
            DO UPDATE SET name = EXCLUDED.name, is_class_a = EXCLUDED.is_class_a,
                          orderable = EXCLUDED.orderable, updated_at = NOW()
        `, id, name, isClassA, orderable)
		if err != nil {
			return fmt.Errorf("failed to upsert product %d: %w", id, err)
		}
		imported++
	}

	log.Printf("products: imported %d rows", imported)
	return nil
}

func importSalesHistory(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	rows, err := readCSV(c.String("file"))
	if err != nil {
		return err
	}

	imported := 0
	for i, record := range rows {
		if len(record) < 4 {
			log.Printf("sales-history: line %d has too few columns, skipping", i+1)
			continue
		}

		productID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if i == 0 {
				continue // header
			}
			log.Printf("sales-history: line %d has bad product id %q, skipping", i+1, record[0])
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			log.Printf("sales-history: line %d has bad year %q, skipping", i+1, record[1])
			continue
		}

		monthLabel := strings.TrimSpace(record[2])

		totalUnits, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || totalUnits < 0 {
			log.Printf("sales-history: line %d has bad total %q, skipping", i+1, record[3])
			continue
		}

		_, err = db.ExecContext(c.Context, `
            INSERT INTO sales_history (product_id, year, month_label, total_units)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (product_id, year, month_label)
            DO UPDATE SET total_units = EXCLUDED.total_units
        `, productID, year, monthLabel, totalUnits)
		if err != nil {
			return fmt.Errorf("failed to upsert sales history for product %d: %w", productID, err)
		}
		imported++
	}

	log.Printf("sales-history: imported %d rows", imported)
	return nil
}

func importForecasts(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open forecasts file: %w", err)
	}
	defer file.Close()

	// Same format the ingestion daemon consumes from object storage.
	rows, err := ingest.ParseForecastCSV(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		_, err = db.ExecContext(c.Context, `
            INSERT INTO product_forecasts (product_id, avg_daily_forecast, updated_at)
            VALUES ($1, $2, NOW())
            ON CONFLICT (product_id)
            DO UPDATE SET avg_daily_forecast = EXCLUDED.avg_daily_forecast, updated_at = NOW()
        `, row.ProductID, row.AvgDailyForecast)
		if err != nil {
			return fmt.Errorf("failed to upsert forecast for product %d: %w", row.ProductID, err)
		}
	}

	log.Printf("forecasts: imported %d rows", len(rows))
	return nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "sim":
		return true
	}
	return false
}
