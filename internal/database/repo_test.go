package database

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"butce/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func header() []any {
	return []any{"Tur", "Isim", "Adet", "Fiyat"}
}

func TestEnsureHeader_EmptyWorksheet(t *testing.T) {
	ws := NewMemoryWorksheet()
	r := New(ws, testLogger())

	require.NoError(t, r.EnsureHeader(context.Background()))

	rows, _ := ws.Values(context.Background())
	require.Len(t, rows, 1)
	assert.Equal(t, header(), rows[0])
}

func TestEnsureHeader_RepairsWrongHeader(t *testing.T) {
	ws := NewMemoryWorksheet([]any{"foo", "bar"}, []any{"Hisse", "X", 1, 2})
	r := New(ws, testLogger())

	require.NoError(t, r.EnsureHeader(context.Background()))

	rows, _ := ws.Values(context.Background())
	require.Len(t, rows, 1)
	assert.Equal(t, header(), rows[0])
}

func TestEnsureHeader_KeepsExistingRows(t *testing.T) {
	ws := NewMemoryWorksheet(header(), []any{"Hisse", "X", 1, 2})
	r := New(ws, testLogger())

	require.NoError(t, r.EnsureHeader(context.Background()))

	rows, _ := ws.Values(context.Background())
	assert.Len(t, rows, 2)
}

func TestListHoldings(t *testing.T) {
	ws := NewMemoryWorksheet(
		header(),
		[]any{"Hisse", "THYAO", 100, "285,50"},
		[]any{"", "", "", ""},
		[]any{"altin/doviz", "USD"},
		[]any{"Kripto", "BTC", "0,1", "2.000.000"},
	)
	r := New(ws, testLogger())

	holdings, err := r.ListHoldings(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 3)

	assert.Equal(t, models.Holding{Type: models.AssetStock, Name: "THYAO", Quantity: 100, Price: "285,50"}, holdings[0])
	assert.Equal(t, models.AssetMetalFX, holdings[1].Type)
	assert.Nil(t, holdings[1].Quantity)
	assert.Nil(t, holdings[1].Price)
	assert.Equal(t, models.AssetType("Kripto"), holdings[2].Type)
}

func TestListHoldings_EmptyWorksheet(t *testing.T) {
	r := New(NewMemoryWorksheet(), testLogger())
	holdings, err := r.ListHoldings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, holdings)
	assert.Empty(t, holdings)
}

func TestAddAndDeleteHolding(t *testing.T) {
	ctx := context.Background()
	ws := NewMemoryWorksheet(header())
	r := New(ws, testLogger())

	require.NoError(t, r.AddHolding(ctx, models.Holding{Type: models.AssetFund, Name: "TTE", Quantity: 10.0, Price: 2.5}))
	require.NoError(t, r.AddHolding(ctx, models.Holding{Type: models.AssetCash, Name: "Kasa", Quantity: 1.0, Price: 100.0}))

	rows, _ := ws.Values(ctx)
	require.Len(t, rows, 3)
	assert.Equal(t, []any{"Fon", "TTE", 10.0, 2.5}, rows[1])

	deleted, err := r.DeleteHolding(ctx, "TTE")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.DeleteHolding(ctx, "TTE")
	require.NoError(t, err)
	assert.False(t, deleted)

	holdings, err := r.ListHoldings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "Kasa", holdings[0].Name)
}

func TestMemoryWorksheet_FindAndDeleteRow(t *testing.T) {
	ctx := context.Background()
	ws := NewMemoryWorksheet(header(), []any{"Hisse", "A", 1, 2}, []any{"Fon", "A", json.Number("3"), 4})

	cells, err := ws.Find(ctx, "A", 0)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Row: 2, Col: 2, Value: "A"}, {Row: 3, Col: 2, Value: "A"}}, cells)

	cells, err = ws.Find(ctx, "3", models.ColQuantity)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Row: 3, Col: 3, Value: "3"}}, cells)

	cells, err = ws.Find(ctx, "A", models.ColType)
	require.NoError(t, err)
	assert.Empty(t, cells)

	assert.ErrorIs(t, ws.DeleteRow(ctx, 0), ErrRowOutOfRange)
	assert.ErrorIs(t, ws.DeleteRow(ctx, 4), ErrRowOutOfRange)
	require.NoError(t, ws.DeleteRow(ctx, 2))

	rows, _ := ws.Values(ctx)
	require.Len(t, rows, 2)
	assert.Equal(t, "Fon", rows[1][0])

	require.NoError(t, ws.Clear(ctx))
	rows, _ = ws.Values(ctx)
	assert.Empty(t, rows)
}
