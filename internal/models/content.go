// Package models defines the portfolio content types exchanged with the
// REST backend. JSON field names match the wire format exactly.
package models

// Identifiers are assigned by the backend, never by this gateway. A zero
// ID on a record submitted for persistence means "create"; a non-zero ID
// means "replace that exact record".

// Story is a timeline entry with an ordered set of images. Image order is
// insertion order and is preserved end-to-end.
type Story struct {
	ID       int64     `json:"id,omitempty"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Date     string    `json:"date"`
	Images   ImageList `json:"images"`
}

// GalleryItem is a single captioned image.
type GalleryItem struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Image       string `json:"image"`
}

// Project is a portfolio project with an ordered technology list.
type Project struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies TechList `json:"technologies"`
	Image        string   `json:"image,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Skill carries a proficiency level as an integer percentage, 0-100.
type Skill struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level"`
}

type Experience struct {
	ID          int64  `json:"id,omitempty"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID        int64  `json:"id,omitempty"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Major     string `json:"major"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GPA       string `json:"gpa,omitempty"`
}

type Award struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Description  string `json:"description,omitempty"`
}

// Link is an external reference; Type drives the icon choice when rendered.
type Link struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty"`
}

// ImageList is an ordered sequence of asset URLs.
type ImageList []string

// Cap returns at most n leading images, preserving order. n <= 0 returns
// the full list.
func (l ImageList) Cap(n int) ImageList {
	if n <= 0 || len(l) <= n {
		return l
	}
	return l[:n]
}

// TechList is an ordered sequence of technology names.
type TechList []string
