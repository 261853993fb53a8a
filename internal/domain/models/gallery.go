package models

// GalleryImageRef points either at a bundled schematic (Asset) or at an image
// added by the user (URI). Only user images can be removed.
type GalleryImageRef struct {
	Asset string `json:"asset,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// IsUser reports whether the reference was added by the user.
func (r GalleryImageRef) IsUser() bool {
	return r.URI != ""
}

// Key returns the identifier used to match a reference.
func (r GalleryImageRef) Key() string {
	if r.URI != "" {
		return r.URI
	}
	return r.Asset
}
