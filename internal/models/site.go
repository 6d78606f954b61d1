package models

// Legacy and single-row page content entities.

// Work is a legacy portfolio entry kept for the old site layout.
type Work struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:512" json:"image_url"`
}

// Author is a byline entry for articles and project credits.
type Author struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255" json:"title"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Member is a staff listing on the team page.
type Member struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255" json:"title"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// About holds the studio introduction copy.
type About struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Description  string `gorm:"type:text" json:"description"`
	Description2 string `gorm:"type:text" json:"description2"`
}
