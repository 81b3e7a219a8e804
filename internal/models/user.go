package models

import "time"

type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Firstname string    `json:"firstname" gorm:"size:80;not null"`
	Lastname  string    `json:"lastname" gorm:"size:80;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
