// Package forms turns submitted form values into typed records and
// persists them through the resource client. Identifier presence decides
// create versus update.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

// ErrValidation marks failures caught before any request is issued.
var ErrValidation = errors.New("validation failed")

const (
	minSkillLevel = 0
	maxSkillLevel = 100
)

// parseID reads the id field. Empty or absent means zero: a create.
func parseID(v url.Values) (int64, error) {
	raw := strings.TrimSpace(v.Get("id"))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", ErrValidation, raw)
	}
	return id, nil
}

func required(v url.Values, field string) (string, error) {
	val := strings.TrimSpace(v.Get(field))
	if val == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return val, nil
}

// dateOrToday defaults an empty date to today, matching the backend's
// expectations for new records.
func dateOrToday(v url.Values, field string) string {
	if d := strings.TrimSpace(v.Get(field)); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

// ParseStory assembles a story from form values. The images come from the
// form session's pending collection, not from the form itself, so their
// upload order is preserved.
func ParseStory(v url.Values, images models.ImageList) (models.Story, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Story{}, err
	}
	title, err := required(v, "title")
	if err != nil {
		return models.Story{}, err
	}

	return models.Story{
		ID:       id,
		Title:    title,
		Content:  v.Get("content"),
		Category: v.Get("category"),
		Date:     dateOrToday(v, "date"),
		Images:   images,
	}, nil
}

// ParseGalleryItem requires an uploaded image before anything is sent.
func ParseGalleryItem(v url.Values) (models.GalleryItem, error) {
	id, err := parseID(v)
	if err != nil {
		return models.GalleryItem{}, err
	}
	title, err := required(v, "title")
	if err != nil {
		return models.GalleryItem{}, err
	}
	image, err := required(v, "image")
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%w: upload an image first", ErrValidation)
	}

	return models.GalleryItem{
		ID:          id,
		Title:       title,
		Description: v.Get("description"),
		Category:    v.Get("category"),
		Date:        dateOrToday(v, "date"),
		Image:       image,
	}, nil
}

// ParseProject splits the comma-separated technologies field into an
// ordered list, trimming whitespace around each entry.
func ParseProject(v url.Values) (models.Project, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Project{}, err
	}
	title, err := required(v, "title")
	if err != nil {
		return models.Project{}, err
	}

	var techs models.TechList
	if raw := strings.TrimSpace(v.Get("technologies")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				techs = append(techs, t)
			}
		}
	}

	return models.Project{
		ID:           id,
		Title:        title,
		Description:  v.Get("description"),
		Technologies: techs,
		Image:        v.Get("image"),
		Link:         v.Get("link"),
	}, nil
}

// ParseSkill converts the level field to an integer percentage and
// bounds-checks it.
func ParseSkill(v url.Values) (models.Skill, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Skill{}, err
	}
	name, err := required(v, "name")
	if err != nil {
		return models.Skill{}, err
	}

	level, err := strconv.Atoi(strings.TrimSpace(v.Get("level")))
	if err != nil {
		return models.Skill{}, fmt.Errorf("%w: level must be a number", ErrValidation)
	}
	if level < minSkillLevel || level > maxSkillLevel {
		return models.Skill{}, fmt.Errorf("%w: level must be between %d and %d", ErrValidation, minSkillLevel, maxSkillLevel)
	}

	return models.Skill{
		ID:       id,
		Name:     name,
		Category: v.Get("category"),
		Level:    level,
	}, nil
}

func ParseExperience(v url.Values) (models.Experience, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Experience{}, err
	}
	position, err := required(v, "position")
	if err != nil {
		return models.Experience{}, err
	}

	return models.Experience{
		ID:          id,
		Position:    position,
		Company:     v.Get("company"),
		StartDate:   v.Get("startDate"),
		EndDate:     v.Get("endDate"),
		Description: v.Get("description"),
	}, nil
}

func ParseEducation(v url.Values) (models.Education, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Education{}, err
	}
	school, err := required(v, "school")
	if err != nil {
		return models.Education{}, err
	}

	return models.Education{
		ID:        id,
		School:    school,
		Degree:    v.Get("degree"),
		Major:     v.Get("major"),
		StartDate: v.Get("startDate"),
		EndDate:   v.Get("endDate"),
		GPA:       v.Get("gpa"),
	}, nil
}

func ParseAward(v url.Values) (models.Award, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Award{}, err
	}
	title, err := required(v, "title")
	if err != nil {
		return models.Award{}, err
	}

	return models.Award{
		ID:           id,
		Title:        title,
		Organization: v.Get("organization"),
		Date:         dateOrToday(v, "date"),
		Description:  v.Get("description"),
	}, nil
}

func ParseLink(v url.Values) (models.Link, error) {
	id, err := parseID(v)
	if err != nil {
		return models.Link{}, err
	}
	title, err := required(v, "title")
	if err != nil {
		return models.Link{}, err
	}
	rawURL, err := required(v, "url")
	if err != nil {
		return models.Link{}, err
	}

	return models.Link{
		ID:    id,
		Title: title,
		URL:   rawURL,
		Type:  v.Get("type"),
	}, nil
}

// ParseProfile assembles the singleton profile, including the nested
// social map from dotted field names.
func ParseProfile(v url.Values) (*models.Profile, error) {
	name, err := required(v, "name")
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		Name:     name,
		Title:    v.Get("title"),
		Bio:      v.Get("bio"),
		Email:    v.Get("email"),
		Phone:    v.Get("phone"),
		Location: v.Get("location"),
		Avatar:   v.Get("avatar"),
		Social: models.SocialLinks{
			GitHub:   v.Get("social.github"),
			LinkedIn: v.Get("social.linkedin"),
			Facebook: v.Get("social.facebook"),
			Twitter:  v.Get("social.twitter"),
		},
	}, nil
}
