package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artillio/boutique-api/internal/models"
)

// prixFixe builds a lookup over a static price table; unknown ids fail the
// same way the real DB-backed lookup does.
func prixFixe(table map[uint]float64) PrixProduit {
	return func(produitID uint) (float64, error) {
		p, ok := table[produitID]
		if !ok {
			return 0, &ProduitIntrouvableError{ProduitID: produitID}
		}
		return p, nil
	}
}

func totalDe(lignes []models.LigneCommande, table map[uint]float64) float64 {
	var total float64
	for _, l := range lignes {
		total += float64(l.Quantite) * table[l.ProduitID]
	}
	return total
}

func TestReconcilierUpdateInsertDelete(t *testing.T) {
	svc := NewCommandeService()
	prix := map[uint]float64{1: 10.00, 2: 5.00, 3: 7.50}
	courantes := []models.LigneCommande{
		{ID: 11, CommandeID: 7, ProduitID: 1, Quantite: 2},
		{ID: 12, CommandeID: 7, ProduitID: 2, Quantite: 1},
	}

	res, err := svc.Reconcilier(courantes, []LigneSouhaitee{
		{ProduitID: 1, Quantite: 3},
		{ProduitID: 3, Quantite: 1},
	}, prixFixe(prix))
	require.NoError(t, err)

	require.Len(t, res.Lignes, 2)
	// produit 1 keeps its line identity, quantity updated in place
	assert.Equal(t, uint(11), res.Lignes[0].ID)
	assert.Equal(t, uint(1), res.Lignes[0].ProduitID)
	assert.Equal(t, 3, res.Lignes[0].Quantite)
	// produit 3 is a fresh line
	assert.Zero(t, res.Lignes[1].ID)
	assert.Equal(t, uint(3), res.Lignes[1].ProduitID)
	assert.Equal(t, 1, res.Lignes[1].Quantite)
	// produit 2 dropped
	require.Len(t, res.ASupprimer, 1)
	assert.Equal(t, uint(12), res.ASupprimer[0].ID)

	assert.InDelta(t, 37.50, res.MontantTotal, 1e-9)
	assert.InDelta(t, totalDe(res.Lignes, prix), res.MontantTotal, 1e-9)
}

func TestReconcilierEmptyDesiredDeletesAll(t *testing.T) {
	svc := NewCommandeService()
	courantes := []models.LigneCommande{
		{ID: 1, ProduitID: 1, Quantite: 2},
		{ID: 2, ProduitID: 2, Quantite: 4},
	}
	res, err := svc.Reconcilier(courantes, nil, prixFixe(nil))
	require.NoError(t, err)
	assert.Empty(t, res.Lignes)
	assert.Len(t, res.ASupprimer, 2)
	assert.Zero(t, res.MontantTotal)
}

func TestReconcilierDuplicateProduitLastWins(t *testing.T) {
	svc := NewCommandeService()
	prix := map[uint]float64{1: 2.00}
	res, err := svc.Reconcilier(nil, []LigneSouhaitee{
		{ProduitID: 1, Quantite: 2},
		{ProduitID: 1, Quantite: 5},
	}, prixFixe(prix))
	require.NoError(t, err)
	require.Len(t, res.Lignes, 1)
	assert.Equal(t, 5, res.Lignes[0].Quantite)
	assert.InDelta(t, 10.00, res.MontantTotal, 1e-9)
}

func TestReconcilierMissingProduitFailsWhole(t *testing.T) {
	svc := NewCommandeService()
	prix := map[uint]float64{1: 10.00}
	courantes := []models.LigneCommande{{ID: 1, ProduitID: 1, Quantite: 2}}

	res, err := svc.Reconcilier(courantes, []LigneSouhaitee{
		{ProduitID: 1, Quantite: 9},
		{ProduitID: 999, Quantite: 1},
	}, prixFixe(prix))
	require.Error(t, err)
	assert.Nil(t, res)

	var pie *ProduitIntrouvableError
	require.True(t, errors.As(err, &pie))
	assert.Equal(t, uint(999), pie.ProduitID)
}

func TestReconcilierIdempotent(t *testing.T) {
	svc := NewCommandeService()
	prix := map[uint]float64{1: 3.00, 2: 4.00}
	souhaitees := []LigneSouhaitee{
		{ProduitID: 1, Quantite: 2},
		{ProduitID: 2, Quantite: 3},
	}

	premier, err := svc.Reconcilier(nil, souhaitees, prixFixe(prix))
	require.NoError(t, err)

	// Re-apply the same desired set over the previous output.
	second, err := svc.Reconcilier(premier.Lignes, souhaitees, prixFixe(prix))
	require.NoError(t, err)

	assert.Equal(t, premier.Lignes, second.Lignes)
	assert.Empty(t, second.ASupprimer)
	assert.InDelta(t, premier.MontantTotal, second.MontantTotal, 1e-9)
}

func TestReconcilierUsesFreshPrices(t *testing.T) {
	svc := NewCommandeService()
	courantes := []models.LigneCommande{{ID: 1, ProduitID: 1, Quantite: 2}}

	// Price changed since the line was created: the total must follow.
	res, err := svc.Reconcilier(courantes, []LigneSouhaitee{{ProduitID: 1, Quantite: 2}}, prixFixe(map[uint]float64{1: 12.00}))
	require.NoError(t, err)
	assert.InDelta(t, 24.00, res.MontantTotal, 1e-9)
}

func TestCalculerTotal(t *testing.T) {
	svc := NewCommandeService()
	prix := map[uint]float64{1: 19.99, 2: 9.99}

	tests := []struct {
		name       string
		souhaitees []LigneSouhaitee
		want       float64
		wantErr    bool
	}{
		{name: "empty set totals zero", souhaitees: nil, want: 0},
		{
			name:       "sums quantity times unit price",
			souhaitees: []LigneSouhaitee{{ProduitID: 1, Quantite: 2}, {ProduitID: 2, Quantite: 1}},
			want:       49.97,
		},
		{
			name:       "missing produit aborts",
			souhaitees: []LigneSouhaitee{{ProduitID: 1, Quantite: 1}, {ProduitID: 999, Quantite: 1}},
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := svc.CalculerTotal(tt.souhaitees, prixFixe(prix))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, total, 1e-9)
		})
	}
}
