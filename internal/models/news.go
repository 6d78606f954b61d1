package models

import "time"

// News is a published article on the studio site.
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Contents    string    `gorm:"type:text" json:"contents"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	FileType    string    `gorm:"size:50" json:"file_type"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	Author      string    `gorm:"size:100" json:"author"`
	Summary     string    `gorm:"size:500" json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
