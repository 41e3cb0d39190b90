package models

import (
	"time"

	"gorm.io/gorm"
)

type Institution struct {
	gorm.Model
	Name             string     `json:"name" gorm:"not null"`
	CoordinatorName  string     `json:"coordinator_name"`
	CoordinatorEmail string     `json:"coordinator_email"`
	CoordinatorPhone string     `json:"coordinator_phone"`
	Address          string     `json:"address"`
	State            string     `json:"state"`
	City             string     `json:"city" gorm:"not null"`
	Pincode          string     `json:"pincode"`
	Status           string     `json:"status" gorm:"default:'pending'"` // pending, approved, rejected, active, suspended
	AssignedNodeID   *uint      `json:"assigned_node_id" gorm:"index"`
	RegistrationDate time.Time  `json:"registration_date"`
	VerificationDate *time.Time `json:"verification_date"`
	VerifiedBy       *uint      `json:"verified_by"`
	IsDeleted        bool       `gorm:"default:false"`
}
