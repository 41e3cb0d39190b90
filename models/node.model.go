package models

import "gorm.io/gorm"

// Node is an administrative region headed by a nodal officer. Institutions
// are assigned to a node; the node's officer verifies certificates for
// courses run by those institutions.
type Node struct {
	gorm.Model
	NodeName       string `json:"node_name" gorm:"not null"`
	StateName      string `json:"state_name" gorm:"not null"`
	NodalOfficerID uint   `json:"nodal_officer_id" gorm:"index;not null"`
	IsDeleted      bool   `gorm:"default:false"`
}
