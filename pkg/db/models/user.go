package models

import "time"

// User mirrors a directory account locally. Sub is the username the external
// directory knows the account by; credentials never live in this table.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Sub       string    `gorm:"column:sub;size:64;not null;uniqueIndex"`
	Email     string    `gorm:"column:email;size:50;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;size:50;not null"`
	Lastname  string    `gorm:"column:lastname;size:100;not null"`
	IDRole    int64     `gorm:"column:id_role;not null"`
	IDStatus  int64     `gorm:"column:id_status;not null"`
	ImageURL  *string   `gorm:"column:image_url;size:500"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Role   Role   `gorm:"foreignKey:IDRole"`
	Status Status `gorm:"foreignKey:IDStatus"`
}

func (User) TableName() string { return "user" }
