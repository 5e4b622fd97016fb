package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/models"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
)

// sectionSpec describes one admin section. Sections map one-to-one onto
// backend collections; uploads marks the sections whose forms carry an
// image upload sub-form.
type sectionSpec struct {
	collection client.Collection
	title      string
	uploads    bool
}

var sectionSpecs = map[string]sectionSpec{
	"profile":    {collection: client.CollectionProfile, title: "Profile"},
	"stories":    {collection: client.CollectionStories, title: "Stories", uploads: true},
	"gallery":    {collection: client.CollectionGallery, title: "Gallery", uploads: true},
	"projects":   {collection: client.CollectionProjects, title: "Projects"},
	"skills":     {collection: client.CollectionSkills, title: "Skills"},
	"experience": {collection: client.CollectionExperience, title: "Experience"},
	"education":  {collection: client.CollectionEducation, title: "Education"},
	"awards":     {collection: client.CollectionAwards, title: "Awards"},
	"links":      {collection: client.CollectionLinks, title: "Links"},
}

var sectionOrder = []string{
	"profile", "stories", "gallery", "projects", "skills",
	"experience", "education", "awards", "links",
}

func adminSections() []string {
	return append([]string(nil), sectionOrder...)
}

// listItems loads the section's records and flattens them into uniform
// admin rows. Profile has no list; it is edited in place.
func (h *Handler) listItems(ctx context.Context, section string) ([]any, error) {
	spec := sectionSpecs[section]
	switch spec.collection {
	case client.CollectionStories:
		records, err := h.client.Stories(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, s := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: s.ID, Title: s.Title,
				Subtitle: s.Category, Body: s.Content,
				Meta:   []string{s.Date},
				Images: s.Images.Cap(4),
			})
		}
		return items, nil
	case client.CollectionGallery:
		records, err := h.client.Gallery(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, g := range records {
			item := render.AdminItem{
				Section: section, ID: g.ID, Title: g.Title,
				Subtitle: g.Category, Body: g.Description,
				Meta: []string{g.Date},
			}
			if g.Image != "" {
				item.Images = []string{g.Image}
			}
			items = append(items, item)
		}
		return items, nil
	case client.CollectionProjects:
		records, err := h.client.Projects(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, p := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: p.ID, Title: p.Title,
				Body: p.Description, Meta: p.Technologies,
			})
		}
		return items, nil
	case client.CollectionSkills:
		records, err := h.client.Skills(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, s := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: s.ID, Title: s.Name,
				Subtitle: s.Category,
				Meta:     []string{fmt.Sprintf("%d%%", s.Level)},
			})
		}
		return items, nil
	case client.CollectionExperience:
		records, err := h.client.Experience(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, e := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: e.ID, Title: e.Position,
				Subtitle: e.Company, Body: e.Description,
				Meta: []string{e.StartDate, e.EndDate},
			})
		}
		return items, nil
	case client.CollectionEducation:
		records, err := h.client.Education(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, e := range records {
			item := render.AdminItem{
				Section: section, ID: e.ID, Title: e.School,
				Subtitle: strings.TrimSpace(e.Degree + " " + e.Major),
				Meta:     []string{e.StartDate, e.EndDate},
			}
			if e.GPA != "" {
				item.Meta = append(item.Meta, "GPA "+e.GPA)
			}
			items = append(items, item)
		}
		return items, nil
	case client.CollectionAwards:
		records, err := h.client.Awards(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, a := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: a.ID, Title: a.Title,
				Subtitle: a.Organization, Body: a.Description,
				Meta: []string{a.Date},
			})
		}
		return items, nil
	case client.CollectionLinks:
		records, err := h.client.Links(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, len(records))
		for _, l := range records {
			items = append(items, render.AdminItem{
				Section: section, ID: l.ID, Title: l.Title,
				Subtitle: l.URL, Meta: []string{l.Type},
			})
		}
		return items, nil
	default:
		return nil, nil
	}
}

// blankFields returns the section's empty create form.
func blankFields(section string) []render.FormField {
	switch section {
	case "stories":
		return storyFields(models.Story{})
	case "gallery":
		return galleryFields(models.GalleryItem{})
	case "projects":
		return projectFields(models.Project{})
	case "skills":
		return skillFields(models.Skill{})
	case "experience":
		return experienceFields(models.Experience{})
	case "education":
		return educationFields(models.Education{})
	case "awards":
		return awardFields(models.Award{})
	case "links":
		return linkFields(models.Link{})
	default:
		return nil
	}
}

// editRecord fetches the record and builds its pre-populated form.
// The returned images seed the form session for image-bearing sections.
func (h *Handler) editRecord(ctx context.Context, section string, id int64) ([]render.FormField, models.ImageList, error) {
	col := sectionSpecs[section].collection
	switch col {
	case client.CollectionStories:
		var s models.Story
		if err := h.client.Record(ctx, col, id, &s); err != nil {
			return nil, nil, err
		}
		return storyFields(s), s.Images, nil
	case client.CollectionGallery:
		var g models.GalleryItem
		if err := h.client.Record(ctx, col, id, &g); err != nil {
			return nil, nil, err
		}
		var images models.ImageList
		if g.Image != "" {
			images = models.ImageList{g.Image}
		}
		return galleryFields(g), images, nil
	case client.CollectionProjects:
		var p models.Project
		if err := h.client.Record(ctx, col, id, &p); err != nil {
			return nil, nil, err
		}
		return projectFields(p), nil, nil
	case client.CollectionSkills:
		var s models.Skill
		if err := h.client.Record(ctx, col, id, &s); err != nil {
			return nil, nil, err
		}
		return skillFields(s), nil, nil
	case client.CollectionExperience:
		var e models.Experience
		if err := h.client.Record(ctx, col, id, &e); err != nil {
			return nil, nil, err
		}
		return experienceFields(e), nil, nil
	case client.CollectionEducation:
		var e models.Education
		if err := h.client.Record(ctx, col, id, &e); err != nil {
			return nil, nil, err
		}
		return educationFields(e), nil, nil
	case client.CollectionAwards:
		var a models.Award
		if err := h.client.Record(ctx, col, id, &a); err != nil {
			return nil, nil, err
		}
		return awardFields(a), nil, nil
	case client.CollectionLinks:
		var l models.Link
		if err := h.client.Record(ctx, col, id, &l); err != nil {
			return nil, nil, err
		}
		return linkFields(l), nil, nil
	default:
		return nil, nil, fmt.Errorf("section %q has no records", section)
	}
}

// parseRecord assembles the submitted form into the section's record
// type. Images come from the form session, never from form fields.
func parseRecord(section string, v url.Values, images models.ImageList) (any, int64, error) {
	switch section {
	case "stories":
		s, err := forms.ParseStory(v, images)
		return s, s.ID, err
	case "gallery":
		if len(images) > 0 {
			v.Set("image", images[len(images)-1])
		}
		g, err := forms.ParseGalleryItem(v)
		return g, g.ID, err
	case "projects":
		p, err := forms.ParseProject(v)
		return p, p.ID, err
	case "skills":
		s, err := forms.ParseSkill(v)
		return s, s.ID, err
	case "experience":
		e, err := forms.ParseExperience(v)
		return e, e.ID, err
	case "education":
		e, err := forms.ParseEducation(v)
		return e, e.ID, err
	case "awards":
		a, err := forms.ParseAward(v)
		return a, a.ID, err
	case "links":
		l, err := forms.ParseLink(v)
		return l, l.ID, err
	default:
		return nil, 0, fmt.Errorf("unknown section %q", section)
	}
}

func storyFields(s models.Story) []render.FormField {
	return []render.FormField{
		{Name: "title", Label: "Title", Type: "text", Value: s.Title},
		{Name: "category", Label: "Category", Type: "text", Value: s.Category},
		{Name: "date", Label: "Date", Type: "date", Value: s.Date},
		{Name: "content", Label: "Content", Type: "textarea", Value: s.Content},
	}
}

func galleryFields(g models.GalleryItem) []render.FormField {
	return []render.FormField{
		{Name: "title", Label: "Title", Type: "text", Value: g.Title},
		{Name: "category", Label: "Category", Type: "text", Value: g.Category},
		{Name: "date", Label: "Date", Type: "date", Value: g.Date},
		{Name: "description", Label: "Description", Type: "textarea", Value: g.Description},
	}
}

func projectFields(p models.Project) []render.FormField {
	return []render.FormField{
		{Name: "title", Label: "Title", Type: "text", Value: p.Title},
		{Name: "description", Label: "Description", Type: "textarea", Value: p.Description},
		{Name: "technologies", Label: "Technologies (comma separated)", Type: "text", Value: strings.Join(p.Technologies, ", ")},
		{Name: "image", Label: "Image URL", Type: "url", Value: p.Image},
		{Name: "link", Label: "Project link", Type: "url", Value: p.Link},
	}
}

func skillFields(s models.Skill) []render.FormField {
	level := ""
	if s.ID != 0 || s.Level != 0 {
		level = strconv.Itoa(s.Level)
	}
	return []render.FormField{
		{Name: "name", Label: "Name", Type: "text", Value: s.Name},
		{Name: "category", Label: "Category", Type: "text", Value: s.Category},
		{Name: "level", Label: "Level (0-100)", Type: "number", Value: level},
	}
}

func experienceFields(e models.Experience) []render.FormField {
	return []render.FormField{
		{Name: "position", Label: "Position", Type: "text", Value: e.Position},
		{Name: "company", Label: "Company", Type: "text", Value: e.Company},
		{Name: "startDate", Label: "Start date", Type: "date", Value: e.StartDate},
		{Name: "endDate", Label: "End date", Type: "date", Value: e.EndDate},
		{Name: "description", Label: "Description", Type: "textarea", Value: e.Description},
	}
}

func educationFields(e models.Education) []render.FormField {
	return []render.FormField{
		{Name: "school", Label: "School", Type: "text", Value: e.School},
		{Name: "degree", Label: "Degree", Type: "text", Value: e.Degree},
		{Name: "major", Label: "Major", Type: "text", Value: e.Major},
		{Name: "startDate", Label: "Start date", Type: "date", Value: e.StartDate},
		{Name: "endDate", Label: "End date", Type: "date", Value: e.EndDate},
		{Name: "gpa", Label: "GPA", Type: "text", Value: e.GPA},
	}
}

func awardFields(a models.Award) []render.FormField {
	return []render.FormField{
		{Name: "title", Label: "Title", Type: "text", Value: a.Title},
		{Name: "organization", Label: "Organization", Type: "text", Value: a.Organization},
		{Name: "date", Label: "Date", Type: "date", Value: a.Date},
		{Name: "description", Label: "Description", Type: "textarea", Value: a.Description},
	}
}

func linkFields(l models.Link) []render.FormField {
	return []render.FormField{
		{Name: "title", Label: "Title", Type: "text", Value: l.Title},
		{Name: "url", Label: "URL", Type: "url", Value: l.URL},
		{Name: "type", Label: "Type", Type: "text", Value: l.Type, Options: []string{"article", "facebook", "drive"}},
	}
}

func profileFields(p *models.Profile) []render.FormField {
	return []render.FormField{
		{Name: "name", Label: "Name", Type: "text", Value: p.Name},
		{Name: "title", Label: "Title", Type: "text", Value: p.Title},
		{Name: "bio", Label: "Bio", Type: "textarea", Value: p.Bio},
		{Name: "email", Label: "Email", Type: "text", Value: p.Email},
		{Name: "phone", Label: "Phone", Type: "text", Value: p.Phone},
		{Name: "location", Label: "Location", Type: "text", Value: p.Location},
		{Name: "avatar", Label: "Avatar URL", Type: "url", Value: p.Avatar},
		{Name: "social.github", Label: "GitHub", Type: "url", Value: p.Social.GitHub},
		{Name: "social.linkedin", Label: "LinkedIn", Type: "url", Value: p.Social.LinkedIn},
		{Name: "social.facebook", Label: "Facebook", Type: "url", Value: p.Social.Facebook},
		{Name: "social.twitter", Label: "Twitter", Type: "url", Value: p.Social.Twitter},
	}
}
