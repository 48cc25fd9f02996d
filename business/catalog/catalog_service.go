package catalog

import "microMart/domain"

// Service holds the static product and pay-per-view catalogs. Both lists are
// fixed at construction and never change while the process runs.
type Service struct {
	products []domain.Product
	byID     map[string]domain.Product
	contents []domain.Content
	contByID map[string]domain.Content
}

func NewService(products []domain.Product, contents []domain.Content) *Service {
	s := &Service{
		products: products,
		byID:     make(map[string]domain.Product, len(products)),
		contents: contents,
		contByID: make(map[string]domain.Content, len(contents)),
	}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	for _, c := range contents {
		s.contByID[c.ID] = c
	}

	return s
}

func (s *Service) Products() []domain.Product {
	return s.products
}

func (s *Service) Product(id string) (domain.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

func (s *Service) Contents() []domain.Content {
	return s.contents
}

func (s *Service) Content(id string) (domain.Content, bool) {
	c, ok := s.contByID[id]
	return c, ok
}

// DefaultProducts is the demo storefront inventory.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "sticker-pack", Name: "Holographic Sticker Pack", PriceUSD: 0.10},
		{ID: "coffee", Name: "Single-Origin Coffee (12oz)", PriceUSD: 0.50},
		{ID: "tshirt", Name: "microMart Logo Tee", PriceUSD: 1.25},
		{ID: "poster", Name: "Base Network Art Print", PriceUSD: 0.75},
		{ID: "keycap", Name: "Artisan Keycap", PriceUSD: 2.00},
	}
}

// DefaultContents is the demo pay-per-view library.
func DefaultContents() []domain.Content {
	return []domain.Content{
		{
			ID:       "synthwave-dreams",
			Name:     "Synthwave Dreams",
			PriceUSD: 0.05,
			Type:     domain.ContentSong,
			URL:      "https://cdn.micromart.example/audio/synthwave-dreams.mp3",
		},
		{
			ID:       "midnight-drive",
			Name:     "Midnight Drive",
			PriceUSD: 0.05,
			Type:     domain.ContentSong,
			URL:      "https://cdn.micromart.example/audio/midnight-drive.mp3",
		},
		{
			ID:       "onchain-documentary",
			Name:     "How Settlement Works (Documentary)",
			PriceUSD: 0.25,
			Type:     domain.ContentVideo,
			URL:      "https://cdn.micromart.example/video/onchain-documentary.mp4",
		},
	}
}
