package imagepkg

import "fmt"

// ResizePreset is a fixed social-media output size.
type ResizePreset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Description string `json:"description"`
}

// ThumbnailSize is a fill-crop output size. The custom size takes user dimensions.
type ThumbnailSize struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Description string `json:"description"`
}

const (
	CustomThumbnailID = "custom"
	MinCustomSize     = 50
	MaxCustomSize     = 2000
)

var resizePresets = []ResizePreset{
	{ID: "social-square", Name: "Social Square", Width: 1080, Height: 1080, Description: "Instagram posts"},
	{ID: "social-story", Name: "Story Format", Width: 1080, Height: 1920, Description: "Instagram/Facebook stories"},
	{ID: "facebook-cover", Name: "Facebook Cover", Width: 1200, Height: 630, Description: "Facebook cover photo"},
	{ID: "twitter-header", Name: "Twitter Header", Width: 1500, Height: 500, Description: "Twitter banner"},
	{ID: "linkedin-post", Name: "LinkedIn Post", Width: 1200, Height: 627, Description: "LinkedIn sharing"},
	{ID: "youtube-thumbnail", Name: "YouTube Thumbnail", Width: 1280, Height: 720, Description: "YouTube video thumbnail"},
	{ID: "profile-picture", Name: "Profile Picture", Width: 400, Height: 400, Description: "Social media profiles"},
	{ID: "banner-large", Name: "Large Banner", Width: 1920, Height: 1080, Description: "Website headers"},
}

var thumbnailSizes = []ThumbnailSize{
	{ID: "small", Name: "Small", Width: 150, Height: 150, Description: "Small preview"},
	{ID: "medium", Name: "Medium", Width: 300, Height: 300, Description: "Medium preview"},
	{ID: "large", Name: "Large", Width: 500, Height: 500, Description: "Large preview"},
	{ID: CustomThumbnailID, Name: "Custom", Width: 200, Height: 200, Description: "Custom size"},
}

// ResizePresets returns a copy of the preset catalog.
func ResizePresets() []ResizePreset {
	return append([]ResizePreset(nil), resizePresets...)
}

// LookupPreset finds a resize preset by id.
func LookupPreset(id string) (ResizePreset, bool) {
	for _, p := range resizePresets {
		if p.ID == id {
			return p, true
		}
	}
	return ResizePreset{}, false
}

// ThumbnailSizes returns a copy of the thumbnail size catalog.
func ThumbnailSizes() []ThumbnailSize {
	return append([]ThumbnailSize(nil), thumbnailSizes...)
}

// ResolveThumbnailSize returns the concrete size for id. For the custom size,
// zero dimensions keep the default and others are clamped to [50,2000].
func ResolveThumbnailSize(id string, customW, customH int) (ThumbnailSize, error) {
	for _, s := range thumbnailSizes {
		if s.ID != id {
			continue
		}
		if s.ID == CustomThumbnailID {
			if customW != 0 {
				s.Width = clamp(customW, MinCustomSize, MaxCustomSize)
			}
			if customH != 0 {
				s.Height = clamp(customH, MinCustomSize, MaxCustomSize)
			}
		}
		return s, nil
	}
	return ThumbnailSize{}, fmt.Errorf("unknown thumbnail size %q", id)
}
