package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/httpx"
	"github.com/artillio/boutique-api/internal/models"
	"github.com/artillio/boutique-api/internal/services"
	"github.com/artillio/boutique-api/internal/validation"
)

// ErrVersionConflict signals a stale optimistic-concurrency version on update.
var ErrVersionConflict = errors.New("version de commande obsolète")

type CommandeHandler struct {
	DB  *gorm.DB
	Svc *services.CommandeService
}

func NewCommandeHandler(db *gorm.DB, svc *services.CommandeService) *CommandeHandler {
	return &CommandeHandler{DB: db, Svc: svc}
}

type ligneRequest struct {
	ProduitID uint `json:"produitId"`
	Quantite  int  `json:"quantite"`
}

type commandeRequest struct {
	NumeroCommande string         `json:"numeroCommande"`
	DateCommande   time.Time      `json:"dateCommande"`
	Statut         string         `json:"statut"`
	ClientID       uint           `json:"clientId"`
	Version        int            `json:"version"`
	Lignes         []ligneRequest `json:"lignesCommande"`
}

func validateCommande(req *commandeRequest) validation.Violations {
	v := validation.Violations{}
	validation.Required("numeroCommande", req.NumeroCommande, v)
	validation.MaxLen("numeroCommande", req.NumeroCommande, 50, v)
	validation.Required("statut", req.Statut, v)
	validation.MaxLen("statut", req.Statut, 50, v)
	validation.PositiveID("clientId", req.ClientID, v)
	for i, l := range req.Lignes {
		validation.PositiveID(fmt.Sprintf("lignesCommande[%d].produitId", i), l.ProduitID, v)
		validation.RangeInt(fmt.Sprintf("lignesCommande[%d].quantite", i), l.Quantite, 1, 1000, v)
	}
	return v
}

func (req *commandeRequest) souhaitees() []services.LigneSouhaitee {
	lignes := make([]services.LigneSouhaitee, 0, len(req.Lignes))
	for _, l := range req.Lignes {
		lignes = append(lignes, services.LigneSouhaitee{ProduitID: l.ProduitID, Quantite: l.Quantite})
	}
	return lignes
}

// prixVia resolves current unit prices against the given DB handle so the
// lookup shares the caller's transaction when there is one.
func prixVia(tx *gorm.DB) services.PrixProduit {
	return func(produitID uint) (float64, error) {
		var produit models.Produit
		if err := tx.First(&produit, produitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, &services.ProduitIntrouvableError{ProduitID: produitID}
			}
			return 0, err
		}
		return produit.PrixUnitaire, nil
	}
}

// List: GET /api/commandes[?clientId=N], newest first.
func (h *CommandeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Preload("Client")
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "client_id_invalide", nil)
			return
		}
		q = q.Where("client_id = ?", clientID)
	}
	var commandes []models.Commande
	if err := q.Order("date_commande desc").Find(&commandes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "liste_commandes_echouee", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, commandes)
}

// Get: GET /api/commandes/{id} with lines and their produits.
func (h *CommandeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var commande models.Commande
	err := h.DB.Preload("Client").Preload("Lignes.Produit").First(&commande, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_commande_echoue", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, commande)
}

// Create: POST /api/commandes. The total is computed from current produit
// prices; a missing client or produit fails the whole creation.
func (h *CommandeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req commandeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateCommande(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}

	var commande models.Commande
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := clientMustExist(tx, req.ClientID); err != nil {
			return err
		}
		res, err := h.Svc.Reconcilier(nil, req.souhaitees(), prixVia(tx))
		if err != nil {
			return err
		}
		commande = models.Commande{
			NumeroCommande: req.NumeroCommande,
			DateCommande:   req.DateCommande,
			Statut:         req.Statut,
			ClientID:       req.ClientID,
			MontantTotal:   res.MontantTotal,
			Version:        1,
			Lignes:         res.Lignes,
		}
		if commande.DateCommande.IsZero() {
			commande.DateCommande = time.Now().UTC()
		}
		return tx.Create(&commande).Error
	})
	if err != nil {
		writeCommandeError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/commandes/%d", commande.ID))
	httpx.JSON(w, http.StatusCreated, commande)
}

// Update: PUT /api/commandes/{id}. Reconciles the desired line set against
// the persisted one inside a single transaction; the request must carry the
// version it last read.
func (h *CommandeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req commandeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "json_invalide", nil)
		return
	}
	if v := validateCommande(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_echouee", v)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var commande models.Commande
		if err := tx.Preload("Lignes").First(&commande, id).Error; err != nil {
			return err
		}
		if req.Version != commande.Version {
			return ErrVersionConflict
		}
		if err := clientMustExist(tx, req.ClientID); err != nil {
			return err
		}
		res, err := h.Svc.Reconcilier(commande.Lignes, req.souhaitees(), prixVia(tx))
		if err != nil {
			return err
		}

		for _, l := range res.ASupprimer {
			if err := tx.Delete(&models.LigneCommande{}, l.ID).Error; err != nil {
				return err
			}
		}
		for i := range res.Lignes {
			res.Lignes[i].CommandeID = commande.ID
			if err := tx.Save(&res.Lignes[i]).Error; err != nil {
				return err
			}
		}

		commande.NumeroCommande = req.NumeroCommande
		commande.DateCommande = req.DateCommande
		commande.Statut = req.Statut
		commande.ClientID = req.ClientID
		commande.MontantTotal = res.MontantTotal
		commande.Version++
		return tx.Omit("Lignes").Save(&commande).Error
	})
	if err != nil {
		writeCommandeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete: DELETE /api/commandes/{id}; lines go with the commande.
func (h *CommandeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var commande models.Commande
	if err := h.DB.First(&commande, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "chargement_commande_echoue", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commande_id = ?", commande.ID).Delete(&models.LigneCommande{}).Error; err != nil {
			return err
		}
		return tx.Delete(&commande).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "suppression_commande_echouee", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientIntrouvableError carries the missing client id for the 400 message.
type clientIntrouvableError struct{ ClientID uint }

func (e *clientIntrouvableError) Error() string {
	return fmt.Sprintf("client %d introuvable", e.ClientID)
}

func clientMustExist(tx *gorm.DB, clientID uint) error {
	var count int64
	if err := tx.Model(&models.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &clientIntrouvableError{ClientID: clientID}
	}
	return nil
}

func writeCommandeError(w http.ResponseWriter, err error) {
	var produitErr *services.ProduitIntrouvableError
	var clientErr *clientIntrouvableError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
	case errors.Is(err, ErrVersionConflict):
		httpx.JSONError(w, http.StatusConflict, "conflit_version", nil)
	case errors.As(err, &produitErr):
		httpx.JSONErrorMessage(w, http.StatusBadRequest, "produit_introuvable", fmt.Sprintf("Produit %d introuvable", produitErr.ProduitID))
	case errors.As(err, &clientErr):
		httpx.JSONErrorMessage(w, http.StatusBadRequest, "client_introuvable", "ClientId introuvable")
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "erreur_interne", nil)
	}
}
