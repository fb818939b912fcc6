package adapthttp

import (
	"errors"
	"net/http"

	"emberguard/internal/domain"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	query := domain.ProductQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		TaskID:   q.Get("task"),
		Sort:     q.Get("sort"),
	}
	switch query.Sort {
	case "", domain.SortName, domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating:
	default:
		writeError(w, http.StatusBadRequest, errors.New("sort must be one of name, price-low, price-high, rating"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.catalog.Products(query)})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, err := s.catalog.Product(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.catalog.Categories()})
}

func (s *Server) handleBundles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.catalog.Bundles()})
}
