package model

// Image is a stored asset reference: the provider-side public ID plus the
// serving URL. Embedded into users (avatar) and products (dp, gallery).
type Image struct {
	PublicID string `json:"public_id" gorm:"size:255"`
	URL      string `json:"url" gorm:"size:512"`
}

// Empty reports whether no asset is referenced.
func (i Image) Empty() bool {
	return i.PublicID == "" && i.URL == ""
}
