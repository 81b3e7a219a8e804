package models

import "time"

type Book struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:200;not null;index"`
	Author    string    `json:"author" gorm:"size:100;not null;index"`
	Publisher string    `json:"publisher" gorm:"size:100;not null"`
	Category  string    `json:"category" gorm:"size:50;not null;index"`
	Available bool      `json:"available" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// association
	BorrowedRecords []BorrowedBook `json:"borrowed_records,omitempty" gorm:"foreignKey:BookID"`
}

func (Book) TableName() string {
	return "books"
}
