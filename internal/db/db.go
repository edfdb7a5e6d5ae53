package db

import (
	"log"
	"os"
	"rewear/internal/models"
	"rewear/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=rewear port=5432 sslmode=disable"
	}

	var err error
	// TranslateError: 唯一索引冲突统一转成 gorm.ErrDuplicatedKey
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedAdmin()
}

// Migrate 建表并创建约束索引，测试里用内存库复用同一套
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Swap{},
		&models.Activity{},
		&models.Like{},
	)
	if err != nil {
		return err
	}

	// 同一请求方对同一物品至多一个 pending 请求。
	// 用部分唯一索引兜底，而不是查了再插。
	return gdb.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_swaps_pending_unique
		 ON swaps (requester_id, item_id) WHERE status = 'pending'`,
	).Error
}

func seedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin_change_me"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@rewear.local",
		Password: hash,
		Name:     "Administrator",
		Role:     "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Initial admin user created")
}
