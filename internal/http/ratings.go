package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/storeratings/storeratings/internal/repository"
)

type submitRatingRequest struct {
	StoreID string `json:"store_id"`
	Rating  int    `json:"rating"`
}

type myRatingResponse struct {
	StoreID    string `json:"store_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	UserRating int    `json:"user_rating"`
}

type ownerRatingResponse struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	RatedBy   string `json:"rated_by"`
	StoreName string `json:"store_name"`
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req submitRatingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.StoreID) == "" {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "store_id is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rating must be between 1 and 5")
		return
	}

	_, _, err := s.repo.Ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		UserID:  identity.UserID,
		StoreID: strings.TrimSpace(req.StoreID),
		Value:   req.Rating,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown store")
			return
		}
		s.logger.Printf("upsert rating error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Rating submitted"})
}

func (s *Server) handleMyRatings(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	rows, err := s.repo.Ratings.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Printf("list user ratings error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch ratings")
		return
	}

	items := make([]myRatingResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, myRatingResponse{
			StoreID:    row.StoreID,
			Name:       row.StoreName,
			Address:    row.StoreAddress,
			UserRating: row.Rating,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleOwnerRatings(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	rows, err := s.repo.Ratings.ListForOwner(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Printf("list owner ratings error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch ratings")
		return
	}

	items := make([]ownerRatingResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, ownerRatingResponse{
			ID:        row.ID,
			Rating:    row.Rating,
			RatedBy:   row.RatedBy,
			StoreName: row.StoreName,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}
