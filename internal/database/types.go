package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRowOutOfRange     = errors.New("row index out of range")
	ErrUnsupportedDriver = errors.New("unsupported sql driver")
)

// Cell addresses a worksheet cell, 1-based like a spreadsheet.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// Worksheet is a grid of raw cell values. Row 1 is whatever was written
// first; callers decide what a header is.
type Worksheet interface {
	Values(ctx context.Context) ([][]any, error)
	AppendRow(ctx context.Context, row []any) error
	Clear(ctx context.Context) error
	// Find returns the cells whose text equals value, in row-major order.
	// column 0 searches every column, otherwise only that 1-based column.
	Find(ctx context.Context, value string, column int) ([]Cell, error)
	DeleteRow(ctx context.Context, index int) error
	Close() error
}

func cellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case json.Number:
		return c.String()
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

func findIn(values [][]any, value string, column int) []Cell {
	value = strings.TrimSpace(value)
	cells := []Cell{}
	for i, row := range values {
		for j, v := range row {
			if column > 0 && j+1 != column {
				continue
			}
			if t := cellText(v); t == value {
				cells = append(cells, Cell{Row: i + 1, Col: j + 1, Value: t})
			}
		}
	}
	return cells
}
