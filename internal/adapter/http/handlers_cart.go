package adapthttp

import (
	"net/http"

	"emberguard/internal/app"
)

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, op string, view app.CartView, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if op != "" {
		s.metrics.cartOp(op)
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	view, err := s.carts.Get(r.Context(), workspaceID(r))
	s.writeCart(w, r, "", view, err)
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.carts.Add(r.Context(), workspaceID(r), req.ProductID, req.Quantity)
	s.writeCart(w, r, "add", view, err)
}

func (s *Server) handleCartItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodPut:
		var req struct {
			Quantity *int `json:"quantity"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.Quantity == nil {
			writeError(w, http.StatusBadRequest, errMissingField("quantity"))
			return
		}
		view, err := s.carts.UpdateQuantity(r.Context(), workspaceID(r), id, *req.Quantity)
		s.writeCart(w, r, "update", view, err)
	case http.MethodDelete:
		view, err := s.carts.Remove(r.Context(), workspaceID(r), id)
		s.writeCart(w, r, "remove", view, err)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCartBundle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	view, err := s.carts.AddBundle(r.Context(), workspaceID(r), r.PathValue("id"))
	s.writeCart(w, r, "add_bundle", view, err)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	view, err := s.carts.Clear(r.Context(), workspaceID(r))
	s.writeCart(w, r, "clear", view, err)
}

func (s *Server) handleCartToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	view, err := s.carts.Toggle(r.Context(), workspaceID(r))
	s.writeCart(w, r, "toggle", view, err)
}

func (s *Server) handleCartOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Open *bool `json:"open"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Open == nil {
		writeError(w, http.StatusBadRequest, errMissingField("open"))
		return
	}
	view, err := s.carts.SetOpen(r.Context(), workspaceID(r), *req.Open)
	s.writeCart(w, r, "", view, err)
}
