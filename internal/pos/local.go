package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/sale"
)

// CatalogLookup resolves products from the in-process catalog, bypassing the cache.
type CatalogLookup struct {
	Catalog *catalog.Service
}

// Product implements ProductLookup.
func (c CatalogLookup) Product(ctx context.Context, id string) (Product, error) {
	p, err := c.Catalog.LookupProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return Product{}, err
	}
	return Product{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}, nil
}

// SaleStore records sales through the in-process sale service.
type SaleStore struct {
	Sales *sale.Service
}

// CreateSale implements SaleWriter.
func (s SaleStore) CreateSale(ctx context.Context, req SaleRequest) (Sale, error) {
	items := make([]sale.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, sale.Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	out, err := s.Sales.Create(ctx, sale.CreateInput{
		CustomerID:    req.CustomerID,
		Items:         items,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return Sale{}, err
	}
	return Sale{
		ID:            out.ID,
		InvoiceNo:     out.InvoiceNo,
		CustomerID:    out.CustomerID,
		Subtotal:      out.Subtotal,
		Discount:      out.Discount,
		Tax:           out.Tax,
		Total:         out.Total,
		PaymentMethod: out.PaymentMethod,
		CreatedAt:     out.CreatedAt,
	}, nil
}
