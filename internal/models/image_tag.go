package models

// ImageTag associates exactly one image with exactly one tag.
// The composite unique index makes duplicate pairs impossible at the
// store level; deleting either side cascades to the link rows.
type ImageTag struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ImageID   uint   `gorm:"not null;uniqueIndex:idx_image_tag_pair;index" json:"image_id"`
	TagID     uint   `gorm:"not null;uniqueIndex:idx_image_tag_pair;index" json:"tag_id"`
	CreatedAt string `gorm:"size:32" json:"create_date_time"`

	Image *Image `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"-"`
	Tag   *Tag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

// NewImageTag builds a link row with a server-side timestamp.
func NewImageTag(imageID, tagID uint) *ImageTag {
	return &ImageTag{
		ImageID:   imageID,
		TagID:     tagID,
		CreatedAt: Now(),
	}
}
