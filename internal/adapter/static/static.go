// Package static loads the product catalog from a YAML document, by default
// the one embedded in the binary.
package static

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"emberguard/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

type taskDoc struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Priority       string `yaml:"priority"`
	ResiliencyGain int    `yaml:"resiliencyGain"`
	EstimatedCost  string `yaml:"estimatedCost"`
	TimeRequired   string `yaml:"timeRequired"`
	Completed      bool   `yaml:"completed"`
}

type productDoc struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Price        string   `yaml:"price"`
	Category     string   `yaml:"category"`
	ImageURL     string   `yaml:"imageUrl"`
	Rating       float64  `yaml:"rating"`
	ReviewCount  int      `yaml:"reviewCount"`
	InStock      bool     `yaml:"inStock"`
	Features     []string `yaml:"features"`
	RelatedTasks []string `yaml:"relatedTasks"`
}

type bundleDoc struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Products      []string `yaml:"products"`
	OriginalPrice string   `yaml:"originalPrice"`
	BundlePrice   string   `yaml:"bundlePrice"`
	Savings       string   `yaml:"savings"`
}

type catalogDoc struct {
	Tasks    []taskDoc    `yaml:"tasks"`
	Products []productDoc `yaml:"products"`
	Bundles  []bundleDoc  `yaml:"bundles"`
}

// Source is a domain.CatalogSource backed by a YAML document.
type Source struct {
	data []byte
}

var _ domain.CatalogSource = (*Source)(nil)

// New returns a Source for the embedded catalog.
func New() *Source {
	return &Source{data: embedded}
}

// FromBytes returns a Source for an arbitrary YAML document.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// LoadCatalog parses the document on every call; callers load once at
// startup.
func (s *Source) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	return Parse(s.data)
}

// Parse decodes a catalog document. Bundle products are resolved by ID
// against the document's product list.
func Parse(data []byte) (*domain.Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}

	cat := &domain.Catalog{}
	for _, t := range doc.Tasks {
		task, err := t.toDomain()
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
		cat.Tasks = append(cat.Tasks, task)
	}
	for _, p := range doc.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q price: %w", p.ID, err)
		}
		cat.Products = append(cat.Products, domain.Product{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			ImageURL:     p.ImageURL,
			Price:        price,
			Category:     p.Category,
			Rating:       p.Rating,
			ReviewCount:  p.ReviewCount,
			InStock:      p.InStock,
			Features:     p.Features,
			RelatedTasks: p.RelatedTasks,
		})
	}
	for _, b := range doc.Bundles {
		bundle, err := b.toDomain(cat)
		if err != nil {
			return nil, fmt.Errorf("bundle %q: %w", b.ID, err)
		}
		cat.Bundles = append(cat.Bundles, bundle)
	}
	return cat, nil
}

func (t taskDoc) toDomain() (domain.HardeningTask, error) {
	category, err := domain.ParseTaskCategory(t.Category)
	if err != nil {
		return domain.HardeningTask{}, err
	}
	priority, err := domain.ParsePriority(t.Priority)
	if err != nil {
		return domain.HardeningTask{}, err
	}
	cost, err := decimal.NewFromString(t.EstimatedCost)
	if err != nil {
		return domain.HardeningTask{}, fmt.Errorf("estimated cost: %w", err)
	}
	return domain.HardeningTask{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Category:       category,
		Priority:       priority,
		ResiliencyGain: t.ResiliencyGain,
		EstimatedCost:  cost,
		TimeRequired:   t.TimeRequired,
		Completed:      t.Completed,
	}, nil
}

func (b bundleDoc) toDomain(cat *domain.Catalog) (domain.Bundle, error) {
	prices := make([]decimal.Decimal, 3)
	for i, s := range []string{b.OriginalPrice, b.BundlePrice, b.Savings} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return domain.Bundle{}, err
		}
		prices[i] = d
	}
	products := make([]domain.Product, 0, len(b.Products))
	for _, id := range b.Products {
		p, ok := cat.Product(id)
		if !ok {
			return domain.Bundle{}, fmt.Errorf("unknown product %q", id)
		}
		products = append(products, p)
	}
	return domain.Bundle{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		Category:      b.Category,
		Products:      products,
		OriginalPrice: prices[0],
		BundlePrice:   prices[1],
		Savings:       prices[2],
	}, nil
}
