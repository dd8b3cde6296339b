package ingest

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects map[string]string
}

func (f *fakeStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	infos := make([]storage.ObjectInfo, 0, len(f.objects))
	for key, content := range f.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(content))})
		}
	}
	return infos, nil
}

func (f *fakeStorage) OpenObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader([]byte(f.objects[key]))), nil
}

type fakeForecastRepo struct {
	upserted []domain.ForecastRow
}

func (f *fakeForecastRepo) AverageDailyForecast(ctx context.Context, productID int64) (*float64, error) {
	return nil, nil
}

func (f *fakeForecastRepo) UpsertForecasts(ctx context.Context, rows []domain.ForecastRow) error {
	f.upserted = append(f.upserted, rows...)
	return nil
}

func TestParseForecastCSV(t *testing.T) {
	input := strings.Join([]string{
		"product_id,avg_daily_forecast",
		"1,120.5",
		"2,80",
		"not-a-number,3",
		"3,-1",
		"4",
		"5,42",
	}, "\n")

	rows, err := ParseForecastCSV(strings.NewReader(input))
	require.NoError(t, err)

	// Header, bad id, negative value and short row are all skipped.
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ForecastRow{ProductID: 1, AvgDailyForecast: 120.5}, rows[0])
	assert.Equal(t, domain.ForecastRow{ProductID: 2, AvgDailyForecast: 80}, rows[1])
	assert.Equal(t, domain.ForecastRow{ProductID: 5, AvgDailyForecast: 42}, rows[2])
}

func TestRunIngestsOnlyCSVsUnderPrefix(t *testing.T) {
	objectStorage := &fakeStorage{objects: map[string]string{
		"forecasts/loja1.csv": "1,100\n2,50\n",
		"forecasts/notes.txt": "ignore me",
		"other/loja2.csv":     "3,10\n",
	}}
	repo := &fakeForecastRepo{}
	svc := NewService(objectStorage, repo, "forecasts/")

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)
	assert.Equal(t, 2, result.Rows)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, int64(1), repo.upserted[0].ProductID)
}
