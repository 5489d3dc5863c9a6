package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/models"
)

// Seed inserts bootstrap data when the corresponding tables are empty.
// Best-effort: failures are logged and never prevent startup.
func Seed(db *gorm.DB, log *zap.SugaredLogger) {
	seedClients(db, log)
	seedProduits(db, log)
	seedCommandes(db, log)
	seedUsers(db, log)
}

func seedClients(db *gorm.DB, log *zap.SugaredLogger) {
	var count int64
	if err := db.Model(&models.Client{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	clients := []models.Client{
		{Nom: "Artillio", Prenom: "Boutique", Email: "contact@artillio.com", Telephone: "0101010101", Adresse: "1 Rue du Code, Paris"},
		{Nom: "Doe", Prenom: "Jane", Email: "jane.doe@example.com", Telephone: "0202020202", Adresse: "2 Avenue Dev, Lyon"},
	}
	if err := db.Create(&clients).Error; err != nil {
		log.Warnw("seed clients failed", "error", err)
	}
}

func seedProduits(db *gorm.DB, log *zap.SugaredLogger) {
	var count int64
	if err := db.Model(&models.Produit{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	produits := []models.Produit{
		{Libelle: "T-shirt logo", PrixUnitaire: 19.99, Stock: 100, Description: "T-shirt Artillio", ImageURL: "/images/tshirt.jpg"},
		{Libelle: "Mug", PrixUnitaire: 9.99, Stock: 200, Description: "Mug personnalisé", ImageURL: "/images/mug.jpg"},
		{Libelle: "Sticker pack", PrixUnitaire: 4.99, Stock: 500, Description: "Stickers Artillio", ImageURL: "/images/stickers.jpg"},
	}
	if err := db.Create(&produits).Error; err != nil {
		log.Warnw("seed produits failed", "error", err)
	}
}

func seedCommandes(db *gorm.DB, log *zap.SugaredLogger) {
	var count int64
	if err := db.Model(&models.Commande{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	var client models.Client
	var produits []models.Produit
	if err := db.First(&client).Error; err != nil {
		return
	}
	if err := db.Order("id").Limit(2).Find(&produits).Error; err != nil || len(produits) < 2 {
		return
	}
	commande := models.Commande{
		NumeroCommande: "CMD-0001",
		DateCommande:   time.Now().UTC(),
		Statut:         "Créée",
		ClientID:       client.ID,
		MontantTotal:   produits[0].PrixUnitaire*2 + produits[1].PrixUnitaire*1,
		Version:        1,
		Lignes: []models.LigneCommande{
			{ProduitID: produits[0].ID, Quantite: 2},
			{ProduitID: produits[1].ID, Quantite: 1},
		},
	}
	if err := db.Create(&commande).Error; err != nil {
		log.Warnw("seed commandes failed", "error", err)
	}
}

func seedUsers(db *gorm.DB, log *zap.SugaredLogger) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	type compte struct {
		nom, prenom, email, role string
	}
	comptes := []compte{
		{"Junior", "Artillio", "artilliojunior@gmail.com", models.RoleAdmin},
		{"Kadir", "Gestionnaire", "kadir@gmail.com", models.RoleGestionnaireCommandes},
		{"NT37", "Gestionnaire", "nt37@gmail.com", models.RoleGestionnaireClients},
		{"Visiteur", "User", "visiteur@gmail.com", models.RoleViewer},
	}
	for _, c := range comptes {
		hash, err := auth.HashPassword("Artillio2001.")
		if err != nil {
			log.Warnw("seed users: hash failed", "error", err)
			return
		}
		user := models.User{Nom: c.nom, Prenom: c.prenom, Email: c.email, PasswordHash: hash, Role: c.role, IsActive: true}
		if err := db.Create(&user).Error; err != nil {
			log.Warnw("seed users failed", "email", c.email, "error", err)
		}
	}
}
