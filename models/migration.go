package models

import (
	"log"

	"github.com/mmdatafocus/dashboard_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Product{},
		&Procurement{}, &Sale{}, &InventorySnapshot{},
		&UploadHistory{},
	)
	if err != nil {
		log.Println("migration failed:", err.Error())
		return
	}
	log.Println("migration completed")
}
