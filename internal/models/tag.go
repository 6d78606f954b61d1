package models

// Tag labels images across projects (facade, interior, ...).
// Name uniqueness is enforced by the store; the match is case-sensitive.
type Tag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"tag_name"`
	CreatedAt   string `gorm:"size:32" json:"create_date_time"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"size:32" json:"color"`
}
