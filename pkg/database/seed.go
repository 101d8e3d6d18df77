package database

import (
	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin user credentials
type DefaultAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// GetDefaultAdmin returns the default admin user
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		FirstName: "Admin",
		LastName:  "ExamHub",
		Email:     "admin@examhub.local",
		Password:  "Admin@123", // Change this in production!
		Phone:     "08000000000",
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin user if not exists
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)

	if result.Error == nil {
		// Admin already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		FirstName:   admin.FirstName,
		LastName:    admin.LastName,
		Email:       admin.Email,
		Phone:       admin.Phone,
		Password:    string(hashedPassword),
		IsActivated: true,
		Role:        constants.RoleAdmin,
	}

	return db.Create(&user).Error
}
