package models

// Produit domain model. Referenced by LigneCommande but not owned by it:
// deleting a produit does not cascade to existing lines.
type Produit struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Libelle      string  `gorm:"size:100;not null" json:"libelle"`
	PrixUnitaire float64 `gorm:"not null" json:"prixUnitaire"`
	Stock        int     `json:"stock"`
	Description  string  `gorm:"size:500" json:"description,omitempty"`
	ImageURL     string  `gorm:"size:500" json:"imageUrl,omitempty"`
}
