// db/init_db.go
package db

import (
	"log"

	"github.com/MAHMOUDBADAWY74/Graduation-project/config"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(cfg config.Config) {
	if cfg.DatabaseURL == "" {
		log.Fatal("InitDB: DATABASE_URL is not set")
	}
	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("InitDB: failed to connect to DB: %v", err)
	}
	if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Fatalf("InitDB: failed to enable uuid-ossp: %v", err)
	}
	DB = conn
	log.Println("Connected & configured DB")

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Community{},
		&models.CommunityMember{},
		&models.CommunityPost{},
		&models.PostComment{},
		&models.PostLike{},
		&models.ExchangeRequest{},
		&models.Notification{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("InitDB: migration failed: %v", err)
	}
	log.Println("DB migrations complete")
}
