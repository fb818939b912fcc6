package adapthttp

import "net/http"

func (s *Server) handleCheckoutSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	sum, err := s.checkout.Summary(r.Context(), workspaceID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := s.checkout.Orders(r.Context(), workspaceID(r))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": orders})
	case http.MethodPost:
		customer := ""
		if u := currentUser(r); u != nil {
			customer = u.Username
		}
		order, err := s.checkout.PlaceOrder(r.Context(), workspaceID(r), customer)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.metrics.orders.Inc()
		s.logger.WithField("order", order.ID).WithField("total", order.Summary.Total.StringFixed(2)).Info("order placed")
		writeJSON(w, http.StatusCreated, order)
	default:
		methodNotAllowed(w)
	}
}
