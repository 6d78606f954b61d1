package models

// Image is an uploaded gallery image. It may belong to a project or
// stand alone; ProjectID is nil for unattached images.
type Image struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FileName     string `gorm:"size:255" json:"file_name"`
	IsShow       bool   `gorm:"default:true" json:"is_show"`
	Description  string `gorm:"type:text" json:"description"`
	CreatedAt    string `gorm:"size:32" json:"create_date_time"`
	IsBasic      bool   `gorm:"default:false" json:"is_basic"`
	DisplayIndex int    `gorm:"column:display_index" json:"index"`
	ImageURL     string `gorm:"size:512" json:"image_url"`
	ProjectID    *uint  `gorm:"index" json:"project_id,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	// Deleting an image deletes its link rows at the store level.
	Links []ImageTag `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"-"`
}
