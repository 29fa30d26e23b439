package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/storeratings/storeratings/internal/auth"
	"github.com/storeratings/storeratings/internal/domain"
	"github.com/storeratings/storeratings/internal/repository"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
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

// createUser backs both open registration and admin user creation; the two
// operations share validation and hashing.
func (s *Server) createUser(r *http.Request, req registerRequest) (domain.User, int, string, string) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" || req.Role == "" {
		return domain.User{}, http.StatusBadRequest, "VALIDATION_ERROR", "name, email, password and role are required"
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.User{}, http.StatusBadRequest, "VALIDATION_ERROR", "role must be one of ADMIN, STORE, USER"
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		return domain.User{}, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user"
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Address:      strings.TrimSpace(req.Address),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, http.StatusBadRequest, "VALIDATION_ERROR", "email already registered"
		}
		s.logger.Printf("create user error: %v", err)
		return domain.User{}, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user"
	}
	return user, 0, "", ""
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		return
	}

	user, err := s.repo.Users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		s.logger.Printf("login lookup error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Printf("issue token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	s.respondJSON(w, http.StatusOK, loginResponse{Token: token, Role: string(user.Role)})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req updatePasswordRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "both old and new passwords are required")
		return
	}

	user, err := s.repo.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		s.logger.Printf("password update lookup error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Password update failed")
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.OldPassword) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Old password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Password update failed")
		return
	}
	if err := s.repo.Users.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		s.logger.Printf("password update error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Password update failed")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// handleLogout acknowledges the request. Tokens are stateless; there is no
// server-side session to invalidate.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Logout successful"})
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
