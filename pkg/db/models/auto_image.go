package models

// AutoImage is a vehicle image URL child row.
type AutoImage struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	URL    string `gorm:"column:url;size:500;not null"`
	IDAuto int64  `gorm:"column:id_auto;not null;index"`

	Auto Auto `gorm:"foreignKey:IDAuto"`
}

func (AutoImage) TableName() string { return "auto_image" }
