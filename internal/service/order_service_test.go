package service

import (
	"context"
	"testing"
	"time"

	"github.com/padariaops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryWriter struct {
	records []domain.DailyOrderRecord
}

func (f *fakeHistoryWriter) InsertDailyOrders(ctx context.Context, records []domain.DailyOrderRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func TestSubmitOrders(t *testing.T) {
	writer := &fakeHistoryWriter{}
	svc := NewOrderService(writer, nil)

	asOf := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC) // Tuesday

	recorded, err := svc.SubmitOrders(context.Background(), 7, map[int64]domain.OrderItem{
		1: {Stock: 3, Orders: 40},
	}, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, recorded)

	require.Len(t, writer.records, 1)
	record := writer.records[0]
	assert.Equal(t, int64(1), record.ProductID)
	assert.Equal(t, int64(7), record.StoreID)
	assert.Equal(t, 40, record.Quantity)
	assert.Equal(t, 3, record.StockAtTime)
	assert.Equal(t, int(time.Tuesday), record.DayOfWeek)
	assert.Equal(t, asOf, record.OrderDate)
}

func TestSubmitOrdersEmpty(t *testing.T) {
	writer := &fakeHistoryWriter{}
	svc := NewOrderService(writer, nil)

	recorded, err := svc.SubmitOrders(context.Background(), 7, nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, recorded)
	assert.Empty(t, writer.records)
}
