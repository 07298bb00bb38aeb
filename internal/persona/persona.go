// Package persona holds the read-only profile data interpolated into the
// chat system prompt and served to the portfolio frontend.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
)

// Contact holds public contact channels.
type Contact struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Experience is a single CV entry.
type Experience struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Years   string `json:"years"`
}

// Project is a portfolio project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// Certification is an award or certificate entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Recommendation is a quote from a colleague.
type Recommendation struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position"`
}

// Profile is the full persona record. Treated as an immutable snapshot per
// deployment; the handler only reads it.
type Profile struct {
	Name            string              `json:"name"`
	Title           string              `json:"title"`
	Location        string              `json:"location"`
	Contact         Contact             `json:"contact"`
	About           []string            `json:"about,omitempty"`
	TechStack       map[string][]string `json:"techStack,omitempty"`
	BeyondCoding    []string            `json:"beyondCoding,omitempty"`
	Experience      []Experience        `json:"experience,omitempty"`
	Projects        []Project           `json:"projects,omitempty"`
	Certifications  []Certification     `json:"certifications,omitempty"`
	Recommendations []Recommendation    `json:"recommendations,omitempty"`
	Greeting        string              `json:"greeting,omitempty"`
}

// LoadFile reads a profile from a JSON file, for deployments that override
// the built-in default.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing persona file %s: %w", path, err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("persona file %s: name is required", path)
	}
	return &p, nil
}

// Load returns the profile at path, or the built-in default when path is
// empty.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
