// Package catalog is a client for the RAWG game-metadata service.
package catalog

// Summary is one search hit. Released and Rating are nil when the
// service omits them.
type Summary struct {
	ID       int
	Name     string
	Released *string
	Rating   *float64
}

// Detail is the full record for one game. Every field beyond the
// summary may be absent.
type Detail struct {
	Summary
	Platforms       []string
	Genres          []string
	Description     *string
	BackgroundImage *string
	Website         *string
	Screenshots     []MediaRef
}

// FillFrom copies summary fields the detail record left out.
func (d *Detail) FillFrom(s Summary) {
	if d.ID == 0 {
		d.ID = s.ID
	}
	if d.Name == "" {
		d.Name = s.Name
	}
	if d.Released == nil {
		d.Released = s.Released
	}
	if d.Rating == nil {
		d.Rating = s.Rating
	}
}

// MediaRef points at one screenshot.
type MediaRef struct {
	ID     int
	Image  string
	Width  int
	Height int
}

// wire shapes

type searchResponse struct {
	Results *[]summaryJSON `json:"results"`
	Error   string         `json:"error"`
}

type summaryJSON struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Released *string  `json:"released"`
	Rating   *float64 `json:"rating"`
}

type detailJSON struct {
	summaryJSON
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	DescriptionRaw  *string `json:"description_raw"`
	BackgroundImage *string `json:"background_image"`
	Website         *string `json:"website"`
	Error           string  `json:"error"`
}

type mediaResponse struct {
	Results *[]struct {
		ID     int    `json:"id"`
		Image  string `json:"image"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"results"`
	Error string `json:"error"`
}

type errorJSON struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (s summaryJSON) toSummary() Summary {
	return Summary{
		ID:       s.ID,
		Name:     s.Name,
		Released: nonEmpty(s.Released),
		Rating:   s.Rating,
	}
}

func (d *detailJSON) toDetail() *Detail {
	detail := &Detail{
		Summary:         d.summaryJSON.toSummary(),
		Description:     nonEmpty(d.DescriptionRaw),
		BackgroundImage: nonEmpty(d.BackgroundImage),
		Website:         nonEmpty(d.Website),
	}
	for _, p := range d.Platforms {
		if p.Platform.Name != "" {
			detail.Platforms = append(detail.Platforms, p.Platform.Name)
		}
	}
	for _, g := range d.Genres {
		if g.Name != "" {
			detail.Genres = append(detail.Genres, g.Name)
		}
	}
	return detail
}

// nonEmpty treats an empty string the same as a missing field.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
