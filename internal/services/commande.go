package services

import (
	"fmt"

	"github.com/artillio/boutique-api/internal/models"
)

// CommandeService encapsulates commande-related business logic: line
// reconciliation and total computation. Keep DB access in handlers; the
// service works on snapshots and a price lookup capability.
type CommandeService struct{}

func NewCommandeService() *CommandeService { return &CommandeService{} }

// LigneSouhaitee is one desired (produit, quantité) pair from a create or
// update request.
type LigneSouhaitee struct {
	ProduitID uint
	Quantite  int
}

// PrixProduit resolves the current unit price of a produit. It must return a
// *ProduitIntrouvableError when the produit does not exist.
type PrixProduit func(produitID uint) (float64, error)

// ProduitIntrouvableError names the missing produit so handlers can surface
// it in the response message.
type ProduitIntrouvableError struct {
	ProduitID uint
}

func (e *ProduitIntrouvableError) Error() string {
	return fmt.Sprintf("produit %d introuvable", e.ProduitID)
}

// Reconciliation is the outcome of diffing current lines against a desired
// set. Lignes is the resulting set (existing lines updated in place, new
// lines appended), ASupprimer the lines no longer wanted. Invariant:
// MontantTotal equals the sum of quantité × current unit price over Lignes.
type Reconciliation struct {
	Lignes       []models.LigneCommande
	ASupprimer   []models.LigneCommande
	MontantTotal float64
}

// Reconcilier computes the minimal set of line insertions, updates and
// deletions turning courantes into souhaitees, plus the new total.
//
// Desired lines are keyed by produit id; a produit appearing twice keeps the
// last-seen quantity. Every referenced produit is resolved before anything is
// decided, so a missing produit fails the whole operation with no partial
// result. Existing lines keep their identity; their quantity is overwritten.
// An empty desired set deletes every line and yields a total of 0.
func (s *CommandeService) Reconcilier(courantes []models.LigneCommande, souhaitees []LigneSouhaitee, prix PrixProduit) (*Reconciliation, error) {
	// Collapse duplicates, last quantity wins, first-seen order preserved.
	ordre := make([]uint, 0, len(souhaitees))
	quantites := make(map[uint]int, len(souhaitees))
	for _, l := range souhaitees {
		if _, vu := quantites[l.ProduitID]; !vu {
			ordre = append(ordre, l.ProduitID)
		}
		quantites[l.ProduitID] = l.Quantite
	}

	// Resolve every price first: a single missing produit aborts the whole
	// reconciliation before any mutation is proposed.
	prixParProduit := make(map[uint]float64, len(ordre))
	for _, pid := range ordre {
		p, err := prix(pid)
		if err != nil {
			return nil, err
		}
		prixParProduit[pid] = p
	}

	existantes := make(map[uint]models.LigneCommande, len(courantes))
	for _, l := range courantes {
		existantes[l.ProduitID] = l
	}

	res := &Reconciliation{}
	for _, pid := range ordre {
		if ligne, ok := existantes[pid]; ok {
			ligne.Quantite = quantites[pid]
			res.Lignes = append(res.Lignes, ligne)
		} else {
			res.Lignes = append(res.Lignes, models.LigneCommande{ProduitID: pid, Quantite: quantites[pid]})
		}
	}
	for _, l := range courantes {
		if _, garde := quantites[l.ProduitID]; !garde {
			res.ASupprimer = append(res.ASupprimer, l)
		}
	}

	for _, l := range res.Lignes {
		res.MontantTotal += float64(l.Quantite) * prixParProduit[l.ProduitID]
	}
	return res, nil
}

// CalculerTotal is the one-way creation variant: it validates produit
// existence line by line and sums quantité × unit price. An empty set costs
// no lookup and totals 0. Duplicate produit ids collapse the same way as in
// Reconcilier.
func (s *CommandeService) CalculerTotal(souhaitees []LigneSouhaitee, prix PrixProduit) (float64, error) {
	res, err := s.Reconcilier(nil, souhaitees, prix)
	if err != nil {
		return 0, err
	}
	return res.MontantTotal, nil
}
