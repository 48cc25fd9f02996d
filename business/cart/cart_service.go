package cart

import (
	"math"

	"microMart/domain"
)

// UnknownProductName labels cart lines whose product id has no catalog match.
// Unknown ids are never rejected; they price at zero.
const UnknownProductName = "UNKNOWN"

// ProductFinder contract interface
type ProductFinder interface {
	Product(id string) (domain.Product, bool)
}

type Service struct {
	products ProductFinder
}

func NewService(products ProductFinder) *Service {
	return &Service{
		products: products,
	}
}

// Calculate derives a Cart from the given line items. It is pure: identical
// input always yields an identical Cart, line order preserved. Line totals
// are rounded to 6 decimal places, the subtotal to cents.
func (s *Service) Calculate(items []domain.CartItem) domain.Cart {
	lines := make([]domain.LineItem, 0, len(items))
	var subtotal float64

	for _, item := range items {
		qty := int(item.Qty)
		if qty < 0 {
			qty = 0
		}

		name := UnknownProductName
		var unitPrice float64
		if p, ok := s.products.Product(item.ID); ok {
			name = p.Name
			unitPrice = p.PriceUSD
		}

		lineTotal := round(unitPrice*float64(qty), 6)
		lines = append(lines, domain.LineItem{
			ID:           item.ID,
			Name:         name,
			UnitPriceUSD: unitPrice,
			Qty:          qty,
			LineTotalUSD: lineTotal,
		})
		subtotal += lineTotal
	}

	return domain.Cart{
		Subtotal:  round(subtotal, 2),
		LineItems: lines,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
