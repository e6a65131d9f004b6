package models

import "time"

// Auto is a vehicle listing. Images and ratings hang off it as child rows.
type Auto struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Model       string    `gorm:"column:model;size:30;not null"`
	Brand       string    `gorm:"column:brand;size:30;not null"`
	Year        int       `gorm:"column:year;not null"`
	Price       float64   `gorm:"column:price;not null"`
	BodyType    string    `gorm:"column:type;size:30;not null"`
	Fuel        string    `gorm:"column:fuel;size:20;not null"`
	Doors       int       `gorm:"column:doors;not null"`
	Motor       string    `gorm:"column:motor;size:30;not null"`
	Height      float64   `gorm:"column:height;not null"`
	Width       float64   `gorm:"column:width;not null"`
	Length      float64   `gorm:"column:length;not null"`
	Description string    `gorm:"column:description;type:text"`
	IDStatus    int64     `gorm:"column:id_status;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Status Status `gorm:"foreignKey:IDStatus"`
}

func (Auto) TableName() string { return "auto" }
