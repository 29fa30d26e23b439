package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeratings/storeratings/internal/domain"
	"github.com/storeratings/storeratings/internal/repository"
)

type storeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerID       string  `json:"owner_id"`
	AverageRating float64 `json:"average_rating"`
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.repo.Stores.ListWithRatings(r.Context())
	if err != nil {
		s.logger.Printf("list stores error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stores")
		return
	}

	items := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		items = append(items, toStoreResponse(store))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	store, err := s.repo.Stores.GetWithRating(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Store not found")
			return
		}
		s.logger.Printf("get store error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch store")
		return
	}
	s.respondJSON(w, http.StatusOK, toStoreResponse(store))
}

func toStoreResponse(store domain.StoreWithRating) storeResponse {
	return storeResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
	}
}
