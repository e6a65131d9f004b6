package models

import "time"

// Rate is a user's review of a vehicle. At most one row exists per
// (id_user, id_auto) pair.
type Rate struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Value     int       `gorm:"column:value;not null"`
	Comment   string    `gorm:"column:comment;size:100;not null"`
	IDAuto    int64     `gorm:"column:id_auto;not null;index;uniqueIndex:uq_rate_user_auto"`
	IDUser    int64     `gorm:"column:id_user;not null;index;uniqueIndex:uq_rate_user_auto"`
	IDStatus  *int64    `gorm:"column:id_status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Auto Auto `gorm:"foreignKey:IDAuto"`
	User User `gorm:"foreignKey:IDUser"`
}

func (Rate) TableName() string { return "rate" }
