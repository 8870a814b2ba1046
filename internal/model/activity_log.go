package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit row. The core never reads it back
// except through the staff listing endpoint.
type ActivityLog struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Action    string         `json:"action" gorm:"not null;index"` // publish_test | start_test | submit_test | delete_test | delete_student
	Username  string         `json:"username" gorm:"not null;index"`
	UserType  string         `json:"user_type,omitempty" gorm:"index"`
	Details   datatypes.JSON `json:"details,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	Timestamp time.Time      `json:"timestamp" gorm:"autoCreateTime;index"`
}
