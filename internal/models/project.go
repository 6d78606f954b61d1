package models

// Project is a portfolio entry for a single building or commission.
type Project struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255" json:"project_name"`
	Description    string `gorm:"type:text" json:"description"`
	IsAvailable    bool   `gorm:"default:true" json:"is_available"`
	CreatedAt      string `gorm:"size:32" json:"created_date_time"`
	Duration       string `gorm:"size:100" json:"duration"`
	GrossFloorArea string `gorm:"size:100" json:"gross_floor_area"`
	Client         string `gorm:"size:255" json:"client"`
	Architect      string `gorm:"size:255" json:"architect"`
	DisplayIndex   int    `gorm:"column:display_index" json:"index"`

	// Deleting a project deletes its images at the store level.
	Images []Image `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}
