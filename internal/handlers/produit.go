package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/httpx"
	"github.com/artillio/boutique-api/internal/models"
	"github.com/artillio/boutique-api/internal/validation"
)

type ProduitHandler struct {
	DB *gorm.DB
}

func NewProduitHandler(db *gorm.DB) *ProduitHandler { return &ProduitHandler{DB: db} }

type produitRequest struct {
	Libelle      string  `json:"libelle"`
	PrixUnitaire float64 `json:"prixUnitaire"`
	Stock        int     `json:"stock"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
}

func validateProduit(req *produitRequest) validation.Violations {
	v := validation.Violations{}
	validation.Required("libelle", req.Libelle, v)
	validation.MaxLen("libelle", req.Libelle, 100, v)
	validation.PositiveFloat("prixUnitaire", req.PrixUnitaire, v)
	validation.MaxLen("description", req.Description, 500, v)
	validation.MaxLen("imageUrl", req.ImageURL, 500, v)
	return v
}

// List: GET /api/produits
func (h *ProduitHandler) List(w http.ResponseWriter, r *http.Request) {
	var produits []models.Produit
	if err := h.DB.Order("id asc").Find(&produits).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "liste_produits_echouee", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, produits)
}

// Get: GET /api/produits/{id}
func (h *ProduitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var produit models.Produit
	if err := h.DB.First(&produit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_produit_echoue", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, produit)
}

// Create: POST /api/produits
func (h *ProduitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req produitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateProduit(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}
	produit := models.Produit{
		Libelle:      req.Libelle,
		PrixUnitaire: req.PrixUnitaire,
		Stock:        req.Stock,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}
	if err := h.DB.Create(&produit).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "creation_produit_echouee", nil)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/produits/%d", produit.ID))
	httpx.JSON(w, http.StatusCreated, produit)
}

// Update: PUT /api/produits/{id}
func (h *ProduitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var produit models.Produit
	if err := h.DB.First(&produit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_produit_echoue", nil)
		return
	}
	var req produitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateProduit(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}
	produit.Libelle = req.Libelle
	produit.PrixUnitaire = req.PrixUnitaire
	produit.Stock = req.Stock
	produit.Description = req.Description
	produit.ImageURL = req.ImageURL
	if err := h.DB.Save(&produit).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "maj_produit_echouee", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete: DELETE /api/produits/{id}. Existing commande lines keep their
// produit id; no cascade.
func (h *ProduitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var produit models.Produit
	if err := h.DB.First(&produit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_produit_echoue", nil)
		return
	}
	if err := h.DB.Delete(&produit).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "suppression_produit_echouee", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
