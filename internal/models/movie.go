package models

import (
	"strconv"
	"strings"
)

// GenreUnknown is the sentinel stored when a record has no genre, so
// facet counts stay stable instead of splitting on null.
const GenreUnknown = "unknown"

// MovieRecord is the canonical movie unit. The RediSearch hash under
// movie:<id> is the single source of truth for all of it.
type MovieRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Plot            string   `json:"plot"`
	Content         string   `json:"content"`
	Director        string   `json:"director"`
	Writer          string   `json:"writer"`
	Stars           []string `json:"stars"`
	Awards          []string `json:"awards"`
	Genre           string   `json:"genre"`
	Subgenre        string   `json:"subgenre"`
	Language        string   `json:"language"`
	Country         string   `json:"country"`
	ProductionHouse string   `json:"production_house"`
	Source          string   `json:"source"`
	Year            int      `json:"year"`
	Rating          float64  `json:"rating"`
	Popularity      int64    `json:"popularity"`
	Version         int64    `json:"version"`
	CreatedAt       int64    `json:"created_at"`
	UpdatedAt       int64    `json:"updated_at"`
}

// Fields flattens the record into the hash field set matching the index
// schema. List values are comma-joined; the ID is carried by the key.
func (m *MovieRecord) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":            m.Title,
		"plot":             m.Plot,
		"content":          m.Content,
		"director":         m.Director,
		"writer":           m.Writer,
		"stars":            strings.Join(m.Stars, ", "),
		"awards":           strings.Join(m.Awards, ", "),
		"genre":            m.Genre,
		"subgenre":         m.Subgenre,
		"language":         m.Language,
		"country":          m.Country,
		"production_house": m.ProductionHouse,
		"source":           m.Source,
		"year":             strconv.Itoa(m.Year),
		"rating":           strconv.FormatFloat(m.Rating, 'f', -1, 64),
		"popularity":       strconv.FormatInt(m.Popularity, 10),
		"version":          strconv.FormatInt(m.Version, 10),
		"created_at":       strconv.FormatInt(m.CreatedAt, 10),
		"updated_at":       strconv.FormatInt(m.UpdatedAt, 10),
	}
}

// RecordFromFields rebuilds a MovieRecord from a stored hash.
func RecordFromFields(id string, f map[string]string) *MovieRecord {
	return &MovieRecord{
		ID:              id,
		Title:           f["title"],
		Plot:            f["plot"],
		Content:         f["content"],
		Director:        f["director"],
		Writer:          f["writer"],
		Stars:           splitList(f["stars"]),
		Awards:          splitList(f["awards"]),
		Genre:           f["genre"],
		Subgenre:        f["subgenre"],
		Language:        f["language"],
		Country:         f["country"],
		ProductionHouse: f["production_house"],
		Source:          f["source"],
		Year:            atoi(f["year"]),
		Rating:          atof(f["rating"]),
		Popularity:      atoi64(f["popularity"]),
		Version:         atoi64(f["version"]),
		CreatedAt:       atoi64(f["created_at"]),
		UpdatedAt:       atoi64(f["updated_at"]),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
