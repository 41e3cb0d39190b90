package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles recognised across the platform.
const (
	RoleStudent      = "student"
	RoleNodalOfficer = "nodal_officer"
	RoleAdmin        = "admin" // institution admin
	RoleGspAuthority = "gsp_authority"
)

type User struct {
	gorm.Model
	Name             string     `json:"name" gorm:"default:''"`
	Email            string     `json:"email" gorm:"unique;not null"`
	Mobile           string     `json:"mobile" gorm:"default:''"`
	Role             string     `json:"role" gorm:"default:'student'"` // student, nodal_officer, admin, gsp_authority
	Password         string     `json:"-" gorm:"not null"`
	InstitutionID    *uint      `json:"institution_id" gorm:"index"` // set for institution admins and students
	IsEmailVerified  bool       `json:"is_email_verified" gorm:"default:false"`
	IsMobileVerified bool       `json:"is_mobile_verified" gorm:"default:false"`
	LastLogin        *time.Time `json:"last_login"`
	IsDeleted        bool       `gorm:"default:false"`
}
