package app

import "emberguard/internal/domain"

// CatalogService answers read-only marketplace queries.
type CatalogService struct {
	catalog *domain.Catalog
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog *domain.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Products filters and sorts the catalog's products.
func (s *CatalogService) Products(q domain.ProductQuery) []domain.Product {
	return q.Apply(s.catalog.Products)
}

// Product looks up one product.
func (s *CatalogService) Product(id string) (domain.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Categories lists the marketplace category filter values.
func (s *CatalogService) Categories() []string {
	return s.catalog.Categories()
}

// Bundles lists every bundle.
func (s *CatalogService) Bundles() []domain.Bundle {
	if s.catalog.Bundles == nil {
		return []domain.Bundle{}
	}
	return s.catalog.Bundles
}
