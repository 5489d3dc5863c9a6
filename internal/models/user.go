package models

import "time"

// Closed set of roles granting access to write operations.
const (
	RoleAdmin                 = "ADMIN"
	RoleGestionnaireCommandes = "GESTIONNAIRE_COMMANDES"
	RoleGestionnaireClients   = "GESTIONNAIRE_CLIENTS"
	RoleViewer                = "VIEWER"
)

// User & auth related model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nom          string    `gorm:"size:100;not null" json:"nom"`
	Prenom       string    `gorm:"size:100;not null" json:"prenom"`
	Email        string    `gorm:"size:200;unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:50;not null;default:'VIEWER'" json:"role"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"dateCreation"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
}
