package database

import (
	"context"
	"fmt"

	"butce/internal/models"

	"github.com/sirupsen/logrus"
)

// Repo reads and writes holdings on a worksheet whose first row is
// models.Header.
type Repo struct {
	ws  Worksheet
	log *logrus.Logger
}

func New(ws Worksheet, log *logrus.Logger) *Repo {
	return &Repo{ws: ws, log: log}
}

func (r *Repo) Close() error {
	return r.ws.Close()
}

// EnsureHeader resets the worksheet to the header row when it is empty or
// its first row is not the expected header.
func (r *Repo) EnsureHeader(ctx context.Context) error {
	values, err := r.ws.Values(ctx)
	if err != nil {
		return fmt.Errorf("read worksheet: %w", err)
	}
	if len(values) > 0 && isHeader(values[0]) {
		return nil
	}
	r.log.Warnf("worksheet has no header row (%d rows), resetting", len(values))
	if err := r.ws.Clear(ctx); err != nil {
		return fmt.Errorf("clear worksheet: %w", err)
	}
	header := make([]any, len(models.Header))
	for i, h := range models.Header {
		header[i] = h
	}
	if err := r.ws.AppendRow(ctx, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (r *Repo) ListHoldings(ctx context.Context) ([]models.Holding, error) {
	values, err := r.ws.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	res := []models.Holding{}
	for i, row := range values {
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		cells := make([]any, len(models.Header))
		copy(cells, row)
		t, ok := models.ParseAssetType(cellText(cells[models.ColType-1]))
		if !ok {
			r.log.Warnf("row %d has unknown type %q", i+1, string(t))
		}
		res = append(res, models.Holding{
			Type:     t,
			Name:     cellText(cells[models.ColName-1]),
			Quantity: cells[models.ColQuantity-1],
			Price:    cells[models.ColPrice-1],
		})
	}
	return res, nil
}

func (r *Repo) AddHolding(ctx context.Context, h models.Holding) error {
	row := []any{h.Type.Label(), h.Name, h.Quantity, h.Price}
	if err := r.ws.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append holding %q: %w", h.Name, err)
	}
	return nil
}

// DeleteHolding removes the first data row whose name matches. A missing
// name is not an error; the bool reports whether a row was removed.
func (r *Repo) DeleteHolding(ctx context.Context, name string) (bool, error) {
	cells, err := r.ws.Find(ctx, name, models.ColName)
	if err != nil {
		return false, fmt.Errorf("find holding %q: %w", name, err)
	}
	for _, c := range cells {
		if c.Row == 1 {
			continue
		}
		if err := r.ws.DeleteRow(ctx, c.Row); err != nil {
			return false, fmt.Errorf("delete row %d: %w", c.Row, err)
		}
		return true, nil
	}
	r.log.Debugf("holding %q not found, nothing to delete", name)
	return false, nil
}

func isHeader(row []any) bool {
	if len(row) < len(models.Header) {
		return false
	}
	for i, h := range models.Header {
		if cellText(row[i]) != h {
			return false
		}
	}
	return true
}

func isBlank(row []any) bool {
	for _, c := range row {
		if cellText(c) != "" {
			return false
		}
	}
	return true
}
