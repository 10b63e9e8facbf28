package catalog

// Category is a top-level sport.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Kind is the coarse media classification.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindImage, KindVideo, KindAudio:
		return true
	}
	return false
}

// Asset is one row of the static asset catalog.
type Asset struct {
	Category  string `json:"category"`
	MediaType string `json:"media_type"`
	Kind      Kind   `json:"kind"`
	Title     string `json:"title"`
	Path      string `json:"path"`
}

// MediaTypes is the fixed tag universe, in display order.
var MediaTypes = []string{
	"assets",
	"photos",
	"b-roll",
	"studio-backdrops",
	"wallpaper-image",
	"audio",
}

var categories = []Category{
	{ID: "football", Name: "Football", Icon: "🏈"},
	{ID: "basketball", Name: "Basketball", Icon: "🏀"},
	{ID: "baseball", Name: "Baseball", Icon: "⚾"},
	{ID: "soccer", Name: "Soccer", Icon: "⚽"},
	{ID: "tennis", Name: "Tennis", Icon: "🎾"},
	{ID: "golf", Name: "Golf", Icon: "⛳"},
	{ID: "swimming", Name: "Swimming", Icon: "🏊"},
	{ID: "running", Name: "Running", Icon: "🏃"},
	{ID: "cycling", Name: "Cycling", Icon: "🚴"},
	{ID: "hockey", Name: "Hockey", Icon: "🏒"},
	{ID: "volleyball", Name: "Volleyball", Icon: "🏐"},
	{ID: "boxing", Name: "Boxing", Icon: "🥊"},
	{ID: "snow", Name: "Snow", Icon: "❄️"},
}

// Categories returns all known categories.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Lookup finds a category by id.
func Lookup(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
