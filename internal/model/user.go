package model

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName      string  `gorm:"column:first_name;not null"`
	LastName       string  `gorm:"column:last_name;not null"`
	Email          string  `gorm:"column:email;unique;not null"`
	Phone          string  `gorm:"column:phone;unique;not null"`
	Password       string  `gorm:"column:password;not null"`
	IsActivated    bool    `gorm:"column:is_activated;default:false;not null"`
	ActivationCode *string `gorm:"column:activation_code;default:null"`
	ResetPassword  *string `gorm:"column:reset_password;default:null"`
	PasswordExpire *int64  `gorm:"column:password_expire;default:null"`
	IsUsedPassword bool    `gorm:"column:is_used_password;default:false;not null"`
	IsDeleted      bool    `gorm:"column:is_deleted;default:false;not null"`
	Avatar         *string `gorm:"column:avatar;default:null"`
	Role           string  `gorm:"column:role;default:user;not null"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
