package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/httpx"
	"github.com/artillio/boutique-api/internal/models"
	"github.com/artillio/boutique-api/internal/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

type clientRequest struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
}

func validateClient(req *clientRequest) validation.Violations {
	v := validation.Violations{}
	validation.Required("nom", req.Nom, v)
	validation.MaxLen("nom", req.Nom, 100, v)
	validation.Required("prenom", req.Prenom, v)
	validation.MaxLen("prenom", req.Prenom, 100, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.MaxLen("email", req.Email, 200, v)
	validation.MaxLen("telephone", req.Telephone, 30, v)
	validation.MaxLen("adresse", req.Adresse, 300, v)
	return v
}

// List: GET /api/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Preload("Commandes").Order("nom asc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "liste_clients_echouee", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var client models.Client
	if err := h.DB.Preload("Commandes").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_client_echoue", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateClient(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}
	client := models.Client{Nom: req.Nom, Prenom: req.Prenom, Email: req.Email, Telephone: req.Telephone, Adresse: req.Adresse}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "creation_client_echouee", nil)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/clients/%d", client.ID))
	httpx.JSON(w, http.StatusCreated, client)
}

// Update: PUT /api/clients/{id} — DateCreation is preserved.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_client_echoue", nil)
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateClient(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}
	client.Nom = req.Nom
	client.Prenom = req.Prenom
	client.Email = req.Email
	client.Telephone = req.Telephone
	client.Adresse = req.Adresse
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "maj_client_echouee", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete: DELETE /api/clients/{id} — the client's commandes (and their
// lines) go with it.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_client_echoue", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var commandeIDs []uint
		if err := tx.Model(&models.Commande{}).Where("client_id = ?", client.ID).Pluck("id", &commandeIDs).Error; err != nil {
			return err
		}
		if len(commandeIDs) > 0 {
			if err := tx.Where("commande_id IN ?", commandeIDs).Delete(&models.LigneCommande{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commandeIDs).Delete(&models.Commande{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "suppression_client_echouee", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// idParam parses the {id} route parameter; writes a 400 on garbage.
func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "id_invalide", nil)
		return 0, false
	}
	return uint(id), true
}
