package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

// dbKey carries the open database handle between the Before hook and actions.
const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Import catalog and history data from CSV files",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:  "products",
				Usage: "Import products (id,name,is_class_a,orderable)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Products CSV file",
						Value:   "./data/seeds/products.csv",
						EnvVars: []string{"PRODUCTS_CSV"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: importProducts,
			},
			{
				Name:  "sales-history",
				Usage: "Import monthly sales history (product_id,year,month_label,total_units)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Sales history CSV file",
						Value:   "./data/seeds/sales_history.csv",
						EnvVars: []string{"SALES_HISTORY_CSV"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: importSalesHistory,
			},
			{
				Name:  "forecasts",
				Usage: "Import flat product forecasts (product_id,avg_daily_forecast)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Forecasts CSV file",
						Value:   "./data/seeds/forecasts.csv",
						EnvVars: []string{"FORECASTS_CSV"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: importForecasts,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
