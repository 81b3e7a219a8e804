package models

import "time"

type BorrowedBook struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID     int64     `json:"book_id" gorm:"not null;index"`
	UserID     int64     `json:"user_id" gorm:"not null;index"`
	UserEmail  string    `json:"user_email" gorm:"size:120;not null;index"`
	BorrowDate time.Time `json:"borrow_date" gorm:"index"`
	ReturnDate time.Time `json:"return_date" gorm:"not null;index"`

	// association
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

func (BorrowedBook) TableName() string {
	return "borrowedbooks"
}
