package intercept

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Faculty is a fixture record shaped like the upstream faculty API rows.
type Faculty struct {
	ID               string        `json:"id" yaml:"id"`
	DisplayName      string        `json:"display_name" yaml:"display_name"`
	Department       string        `json:"department" yaml:"department"`
	Institution      string        `json:"institution" yaml:"institution"`
	HIndex           int           `json:"h_index" yaml:"h_index"`
	TotalCitations   int           `json:"total_citations" yaml:"total_citations"`
	PublicationCount int           `json:"publication_count" yaml:"publication_count"`
	ValidationStatus string        `json:"validation_status" yaml:"validation_status"`
	ReputationScore  float64       `json:"reputation_score" yaml:"reputation_score"`
	Publications     []Publication `json:"publications,omitempty" yaml:"publications"`
}

// Publication is one row of a faculty member's publication list.
type Publication struct {
	Title     string `json:"title" yaml:"title"`
	Year      int    `json:"year" yaml:"year"`
	Citations int    `json:"citations" yaml:"citations"`
}

// Store holds every static record the interception layer answers with.
// Records never change during a session, so routing stays deterministic.
type Store struct {
	Faculty  []Faculty                         `yaml:"faculty"`
	Entities map[string]map[string]interface{} `yaml:"entities"`
}

// DefaultStore returns the compiled-in fixture set.
func DefaultStore() *Store {
	return &Store{
		Faculty: []Faculty{
			{
				ID:               "42",
				DisplayName:      "Dr. Elena Vasquez",
				Department:       "Chemistry",
				Institution:      "Rensselaer Polytechnic Institute",
				HIndex:           34,
				TotalCitations:   5120,
				PublicationCount: 3,
				ValidationStatus: "verified",
				ReputationScore:  82,
				Publications: []Publication{
					{Title: "Catalytic pathways in organometallic synthesis", Year: 2019, Citations: 240},
					{Title: "Ligand effects on reaction kinetics", Year: 2021, Citations: 98},
					{Title: "Spectroscopy of transition-metal complexes", Year: 2023, Citations: 31},
				},
			},
			{
				ID:               "7",
				DisplayName:      "Dr. Marcus Webb",
				Department:       "Physics",
				Institution:      "Rensselaer Polytechnic Institute",
				HIndex:           12,
				TotalCitations:   830,
				PublicationCount: 1,
				ValidationStatus: "pending",
				ReputationScore:  41,
				Publications: []Publication{
					{Title: "Phonon transport in layered materials", Year: 2022, Citations: 17},
				},
			},
		},
		Entities: map[string]map[string]interface{}{
			"42": {
				"id":          42,
				"name":        "Dr. Elena Vasquez",
				"department":  "Chemistry",
				"institution": "Rensselaer Polytechnic Institute",
			},
			"7": {
				"id":          7,
				"name":        "Dr. Marcus Webb",
				"department":  "Physics",
				"institution": "Rensselaer Polytechnic Institute",
			},
		},
	}
}

// LoadStore reads a fixture overlay from a YAML file. Records in the file
// replace the defaults wholesale when present.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	store := DefaultStore()
	var overlay Store
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	if len(overlay.Faculty) > 0 {
		store.Faculty = overlay.Faculty
	}
	if len(overlay.Entities) > 0 {
		store.Entities = overlay.Entities
	}
	return store, nil
}

// facultyByID returns the faculty record for an identifier suffix.
func (s *Store) facultyByID(id string) (Faculty, bool) {
	for _, f := range s.Faculty {
		if f.ID == id {
			return f, true
		}
	}
	return Faculty{}, false
}
