package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/httpx"
	"github.com/artillio/boutique-api/internal/models"
	"github.com/artillio/boutique-api/internal/validation"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{DB: db, Tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// Login: POST /api/auth/login
//
// Unknown email, wrong password, and inactive account all produce the same
// response so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}

	var user models.User
	err := h.DB.Where("lower(email) = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(req.Email)), true).
		First(&user).Error
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		httpx.JSONErrorMessage(w, http.StatusUnauthorized, "identifiants_invalides", "Email ou mot de passe incorrect")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "emission_token_echouee", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, Roles: []string{user.Role}})
}
