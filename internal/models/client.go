package models

import "time"

// Client entity
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nom          string    `gorm:"size:100;not null;index" json:"nom"`
	Prenom       string    `gorm:"size:100;not null" json:"prenom"`
	Email        string    `gorm:"size:200;not null" json:"email"`
	Telephone    string    `gorm:"size:30" json:"telephone"`
	Adresse      string    `gorm:"size:300" json:"adresse"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"dateCreation"`

	// Commandes are owned by the client: deleting a client deletes them.
	Commandes []Commande `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"commandes,omitempty"`
}
