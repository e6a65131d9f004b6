package models

// Role is the permission-class lookup for users.
type Role struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:50;not null;uniqueIndex"`
}

func (Role) TableName() string { return "role" }
