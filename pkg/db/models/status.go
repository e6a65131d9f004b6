package models

// Status is the shared lookup table encoding active/inactive state for the
// entities that soft-delete instead of removing rows. Description tags the
// owning entity family (to_user, to_auto, to_rate).
type Status struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Description string `gorm:"column:description;size:50;not null"`
	Value       bool   `gorm:"column:value;not null"`
}

func (Status) TableName() string { return "status" }
