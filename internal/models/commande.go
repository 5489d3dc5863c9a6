package models

import "time"

// Commande is a client's purchase record. MontantTotal is never taken from
// the request: it is recomputed from current produit prices on every create
// or update that touches lines.
type Commande struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NumeroCommande string    `gorm:"size:50;not null" json:"numeroCommande"`
	DateCommande   time.Time `json:"dateCommande"`
	MontantTotal   float64   `gorm:"not null;default:0" json:"montantTotal"`
	Statut         string    `gorm:"size:50;not null" json:"statut"`
	ClientID       uint      `gorm:"not null;index" json:"clientId"`
	Client         *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Version guards against lost updates: an update must carry the version
	// it last read and is rejected on mismatch.
	Version int `gorm:"not null;default:1" json:"version"`

	Lignes []LigneCommande `gorm:"foreignKey:CommandeID;constraint:OnDelete:CASCADE" json:"lignesCommande"`
}

// LigneCommande is one (produit, quantité) pairing within a commande. Lines
// are created, mutated and deleted only as a side effect of commande
// create/update, never directly.
type LigneCommande struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CommandeID uint     `gorm:"not null;index" json:"commandeId"`
	ProduitID  uint     `gorm:"not null" json:"produitId"`
	Quantite   int      `gorm:"not null" json:"quantite"`
	Produit    *Produit `gorm:"foreignKey:ProduitID" json:"produit,omitempty"`
}
