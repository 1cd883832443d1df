package database

import (
	"fmt"
	"log"
	"mgMessenger/configs"
	"mgMessenger/internal/enums"
	"mgMessenger/internal/models"
	"mgMessenger/internal/repositories"
	"mgMessenger/internal/utils"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

func GetDB(config *configs.Config) *gorm.DB {
	once.Do(func() {
		initialize(config)
	})
	return db
}

func initialize(config *configs.Config) {
	psql := getPSQL(config)
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		psql.Host, psql.User, psql.Password, psql.Name, psql.Port, psql.SSL, psql.Timezone,
	)
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrate()
	seedAdmin(config)
}

func getPSQL(config *configs.Config) *models.PSQL {
	return &models.PSQL{
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
	}
}

func migrate() {
	err := db.AutoMigrate(
		&models.User{},
		&models.ChatGroup{},
		&models.GroupMember{},
		&models.Message{},
		&models.UserNote{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrated successfully")
}

// seedAdmin creates the bootstrap administrator on an empty database.
func seedAdmin(config *configs.Config) {
	login := config.Viper.GetString("admin.login")
	if login == "" {
		return
	}
	var count int64
	if err := db.Model(&models.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		log.Fatalf("Failed to look up admin user: %v", err)
	}
	if count > 0 {
		return
	}

	passwordHash, err := utils.HashPassword(config.Viper.GetString("admin.password"))
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &models.User{
		Login:        login,
		PasswordHash: passwordHash,
		Role:         enums.USER_ROLE_ADMIN,
		FirstName:    "Admin",
		LastName:     "MG",
	}
	if _, createErrs := repositories.NewAuthenticationRepository(db).CreateUser(admin); len(createErrs) > 0 {
		log.Fatalf("Failed to create admin user: %v", createErrs)
	}
	log.Printf("Admin user %v created", login)
}
