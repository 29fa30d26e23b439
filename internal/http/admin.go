package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/storeratings/storeratings/internal/domain"
	"github.com/storeratings/storeratings/internal/repository"
)

type adminStatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

type adminUserResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Role      string   `json:"role"`
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

type createStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.Count(r.Context())
	if err != nil {
		s.logger.Printf("count users error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}
	stores, err := s.repo.Stores.Count(r.Context())
	if err != nil {
		s.logger.Printf("count stores error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}
	ratings, err := s.repo.Ratings.Count(r.Context())
	if err != nil {
		s.logger.Printf("count ratings error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	s.respondJSON(w, http.StatusOK, adminStatsResponse{
		TotalUsers:   users,
		TotalStores:  stores,
		TotalRatings: ratings,
	})
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	filters, err := buildUserFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	users, err := s.repo.Users.List(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list users error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
		return
	}

	items := make([]adminUserResponse, 0, len(users))
	for _, user := range users {
		item := adminUserResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Address: user.Address,
			Role:    string(user.Role),
		}
		// Store owners carry the average across their stores, computed fresh
		// from the ratings table.
		if user.Role == domain.RoleStore {
			avg, err := s.repo.Users.OwnerAverage(r.Context(), user.ID)
			if err != nil {
				s.logger.Printf("owner average error: %v", err)
				s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
				return
			}
			item.AvgRating = &avg
		}
		items = append(items, item)
	}
	s.respondJSON(w, http.StatusOK, items)
}

func buildUserFilters(query url.Values) (repository.UserListFilters, error) {
	var filters repository.UserListFilters

	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.Name = &val
	}
	if val := strings.TrimSpace(query.Get("email")); val != "" {
		filters.Email = &val
	}
	if val := strings.TrimSpace(query.Get("address")); val != "" {
		filters.Address = &val
	}
	if val := strings.TrimSpace(query.Get("role")); val != "" {
		role, err := domain.ParseRole(val)
		if err != nil {
			return filters, fmt.Errorf("invalid role value")
		}
		filters.Role = &role
	}
	return filters, nil
}

func (s *Server) handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	user, status, code, msg := s.createUser(r, req)
	if code != "" {
		s.respondError(w, status, code, msg)
		return
	}
	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleAdminListStores(w http.ResponseWriter, r *http.Request) {
	s.handleListStores(w, r)
}

func (s *Server) handleAdminCreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.OwnerID) == "" {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "name, email, address and owner_id are required")
		return
	}

	store, err := s.repo.Stores.Create(r.Context(), repository.StoreCreateParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		OwnerID: strings.TrimSpace(req.OwnerID),
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown owner")
			return
		}
		s.logger.Printf("create store error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create store")
		return
	}

	s.respondJSON(w, http.StatusCreated, toStoreResponse(domain.StoreWithRating{Store: store}))
}
