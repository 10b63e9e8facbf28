package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadAssetsCSV loads the static asset catalog. Columns are matched by
// header name: category, media_type, kind, title, path.
func LoadAssetsCSV(path string) ([]Asset, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	out, err := parseAssets(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return out, nil
}

func parseAssets(r io.Reader) ([]Asset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "media_type", "path"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Asset{}
	for i, row := range rows[1:] {
		a := Asset{
			Category:  get(row, "category"),
			MediaType: get(row, "media_type"),
			Kind:      Kind(strings.ToLower(get(row, "kind"))),
			Title:     get(row, "title"),
			Path:      get(row, "path"),
		}
		if a.Category == "" && a.Path == "" {
			continue
		}
		if a.Kind == "" {
			a.Kind = KindImage
		}
		if !a.Kind.Valid() {
			return nil, fmt.Errorf("row %d: unknown kind %q", i+2, a.Kind)
		}
		if a.Category == "" || a.MediaType == "" || a.Path == "" {
			return nil, fmt.Errorf("row %d: category, media_type and path are required", i+2)
		}
		if a.Title == "" {
			a.Title = titleFromPath(a.Path)
		}
		out = append(out, a)
	}
	return out, nil
}

func titleFromPath(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	base, _, _ := strings.Cut(p, ".")
	return base
}

// DefaultAssets is the built-in catalog used when no CSV is configured.
func DefaultAssets() []Asset {
	return []Asset{
		{Category: "snow", MediaType: "studio-backdrops", Kind: KindImage, Title: "Snow Mountain Peak", Path: "/assets/backdrops/snow/snow-backdrop-1.png"},
		{Category: "snow", MediaType: "studio-backdrops", Kind: KindImage, Title: "Snowy Forest Trail", Path: "/assets/backdrops/snow/snow-backdrop-2.png"},
		{Category: "snow", MediaType: "wallpaper-image", Kind: KindImage, Title: "Winter Landscape", Path: "/assets/backdrops/snow/snow-backdrop-3.png"},
		{Category: "snow", MediaType: "wallpaper-image", Kind: KindImage, Title: "Alpine Snow Scene", Path: "/assets/backdrops/snow/snow-backdrop-4.png"},
		{Category: "snow", MediaType: "b-roll", Kind: KindVideo, Title: "Powder Run", Path: "/assets/snow/b-roll/powder-run.mp4"},
		{Category: "football", MediaType: "photos", Kind: KindImage, Title: "Stadium Lights", Path: "/assets/football/photos/stadium-lights.jpg"},
		{Category: "football", MediaType: "assets", Kind: KindImage, Title: "Field Overlay", Path: "/assets/football/assets/field-overlay.png"},
		{Category: "football", MediaType: "wallpaper-image", Kind: KindImage, Title: "End Zone", Path: "/assets/football/wallpaper/end-zone.jpg"},
		{Category: "basketball", MediaType: "photos", Kind: KindImage, Title: "Courtside", Path: "/assets/basketball/photos/courtside.jpg"},
		{Category: "basketball", MediaType: "b-roll", Kind: KindVideo, Title: "Fast Break", Path: "/assets/basketball/b-roll/fast-break.mp4"},
		{Category: "soccer", MediaType: "photos", Kind: KindImage, Title: "Penalty Spot", Path: "/assets/soccer/photos/penalty-spot.jpg"},
		{Category: "soccer", MediaType: "audio", Kind: KindAudio, Title: "Crowd Chant", Path: "/assets/soccer/audio/crowd-chant.mp3"},
	}
}
