package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"butce/internal/metrics"
	"butce/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyName        = errors.New("name is required")
	ErrUnknownAssetType = errors.New("unknown asset type")
)

// StoreUnavailableWarning is shown above the empty table when the worksheet
// could not be read.
const StoreUnavailableWarning = "Kayıtlara ulaşılamadı, boş tablo gösteriliyor."

type HoldingStore interface {
	ListHoldings(ctx context.Context) ([]models.Holding, error)
	AddHolding(ctx context.Context, h models.Holding) error
	DeleteHolding(ctx context.Context, name string) (bool, error)
}

type AddRequest struct {
	Type     string `form:"type" json:"type" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
	Quantity string `form:"quantity" json:"quantity"`
	Price    string `form:"price" json:"price"`
}

type TypeOption struct {
	Code  models.AssetType `json:"code"`
	Label string           `json:"label"`
}

// View is everything the page needs after one user action.
type View struct {
	Holdings          []models.NormalizedHolding `json:"holdings"`
	GrandTotal        float64                    `json:"grand_total"`
	GrandTotalDisplay string                     `json:"grand_total_display"`
	Allocation        []Allocation               `json:"allocation"`
	Names             []string                   `json:"names"`
	Types             []TypeOption               `json:"types"`
	Warning           string                     `json:"warning,omitempty"`
}

type Portfolio struct {
	store    HoldingStore
	currency string
	notice   string
	log      *logrus.Logger
}

func NewPortfolio(store HoldingStore, currency string, log *logrus.Logger) *Portfolio {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Portfolio{store: store, currency: currency, log: log}
}

func (p *Portfolio) Currency() string { return p.currency }

// WithNotice sets a warning shown on every view, used when the server is
// running on the in-memory fallback table.
func (p *Portfolio) WithNotice(msg string) *Portfolio {
	p.notice = msg
	return p
}

// View loads the holdings and values them. A store failure is reported in
// View.Warning with an empty table instead of an error.
func (p *Portfolio) View(ctx context.Context) View {
	holdings, err := p.store.ListHoldings(ctx)
	if err != nil {
		p.log.Errorf("list holdings failed: %v", err)
		metrics.StoreFailures.WithLabelValues("list").Inc()
		v := p.render(nil)
		v.Warning = StoreUnavailableWarning
		return v
	}
	return p.render(holdings)
}

func (p *Portfolio) Add(ctx context.Context, req AddRequest) (View, error) {
	t, ok := models.ParseAssetType(req.Type)
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownAssetType, req.Type)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return View{}, ErrEmptyName
	}
	h := models.Holding{
		Type:     t,
		Name:     name,
		Quantity: Normalize(req.Quantity),
		Price:    Normalize(req.Price),
	}
	if err := p.store.AddHolding(ctx, h); err != nil {
		metrics.StoreFailures.WithLabelValues("append").Inc()
		return View{}, err
	}
	metrics.HoldingsAdded.Inc()
	p.log.WithFields(logrus.Fields{"type": t, "name": name}).Info("holding added")
	return p.View(ctx), nil
}

// Delete removes the first holding called name. Unknown names leave the
// store untouched.
func (p *Portfolio) Delete(ctx context.Context, name string) (View, bool, error) {
	deleted, err := p.store.DeleteHolding(ctx, strings.TrimSpace(name))
	if err != nil {
		metrics.StoreFailures.WithLabelValues("delete").Inc()
		return View{}, false, err
	}
	if deleted {
		metrics.HoldingsDeleted.Inc()
		p.log.WithField("name", name).Info("holding deleted")
	}
	return p.View(ctx), deleted, nil
}

func (p *Portfolio) render(holdings []models.Holding) View {
	val := Value(holdings)
	metrics.NetWorth.Set(val.GrandTotal)
	names := make([]string, 0, len(val.Rows))
	for _, r := range val.Rows {
		names = append(names, r.Name)
	}
	types := make([]TypeOption, 0, len(models.AssetTypes))
	for _, t := range models.AssetTypes {
		types = append(types, TypeOption{Code: t, Label: t.Label()})
	}
	return View{
		Holdings:          val.Rows,
		GrandTotal:        val.GrandTotal,
		GrandTotalDisplay: FormatMoney(val.GrandTotal, p.currency),
		Allocation:        val.Allocation,
		Names:             names,
		Types:             types,
		Warning:           p.notice,
	}
}
