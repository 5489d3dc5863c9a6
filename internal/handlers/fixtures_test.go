package handlers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/db"
	"github.com/artillio/boutique-api/internal/models"
)

// setupTestDB opens a unique in-memory sqlite database per test name and
// migrates the five business tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedClient(t *testing.T, conn *gorm.DB, nom, prenom, email string) models.Client {
	t.Helper()
	client := models.Client{Nom: nom, Prenom: prenom, Email: email}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func seedProduit(t *testing.T, conn *gorm.DB, libelle string, prix float64) models.Produit {
	t.Helper()
	produit := models.Produit{Libelle: libelle, PrixUnitaire: prix, Stock: 10}
	if err := conn.Create(&produit).Error; err != nil {
		t.Fatalf("seed produit: %v", err)
	}
	return produit
}
