package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Signup godoc
// @Summary      Registers a new user
// @Description  Creates a user account and returns a bearer token for it
// @Tags         users
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /users/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Signup(r.Context(), ports.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken),
			errors.Is(err, domain.ErrPasswordMismatch),
			errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
		}
		return
	}

	respondTokenData(w, http.StatusCreated, token, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Logs a user in
// @Description  Exchanges email and password for a bearer token
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
		return
	}

	respondTokenData(w, http.StatusOK, token, user)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword godoc
// @Summary      Requests a password reset token
// @Description  Emails a single-use reset token to the account address.
//               Responding 404 for unknown emails mirrors the upstream
//               behavior; it does allow address enumeration.
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      404
// @Router       /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", requestScheme(r), r.Host)
	if err := h.authService.ForgotPassword(r.Context(), req.Email, resetURLBase); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "there is no user with that email address")
		case errors.Is(err, domain.ErrEmailDelivery):
			respondError(w, http.StatusInternalServerError, domain.ErrEmailDelivery.Error())
		default:
			respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, dataResponse{Status: "success", Message: "token sent to email"})
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ResetPassword godoc
// @Summary      Consumes a password reset token
// @Description  Sets a new password and returns a fresh bearer token
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      400
// @Router       /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "token")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.ResetPassword(r.Context(), resetToken, req.Password, req.PasswordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidResetToken),
			errors.Is(err, domain.ErrPasswordMismatch),
			errors.Is(err, domain.ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, dataResponse{Status: "success", Token: token})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePassword godoc
// @Summary      Changes the authenticated user's password
// @Description  Verifies the current password, stores the new one and
//               returns a fresh bearer token; older tokens stop working.
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /users/updatePassword [patch]
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.UpdatePassword(r.Context(), user.ID, req.CurrentPassword, req.Password, req.PasswordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "your current password is incorrect")
		case errors.Is(err, domain.ErrPasswordMismatch), errors.Is(err, domain.ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, dataResponse{Status: "success", Token: token})
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
