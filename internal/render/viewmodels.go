package render

import (
	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

// View models keep display policy (image caps, icon mapping) out of the
// templates and out of the domain types.

const storyPreviewImageCap = 4

type storyView struct {
	models.Story
	DisplayImages models.ImageList
}

type linkView struct {
	models.Link
	Icon string
}

func linkIcon(linkType string) string {
	switch linkType {
	case "facebook":
		return "fab fa-facebook"
	case "drive":
		return "fab fa-google-drive"
	default:
		return "far fa-newspaper"
	}
}

// StoryCard renders a story preview; at most four images are shown.
func (r *Renderer) StoryCard(record any) (Fragment, error) {
	story := record.(models.Story)
	return r.fragment("story_card", storyView{
		Story:         story,
		DisplayImages: story.Images.Cap(storyPreviewImageCap),
	})
}

// StoryDetail renders a full story with every image.
func (r *Renderer) StoryDetail(record any) (Fragment, error) {
	story := record.(models.Story)
	return r.fragment("story_detail", storyView{
		Story:         story,
		DisplayImages: story.Images,
	})
}

func (r *Renderer) GalleryCard(record any) (Fragment, error) {
	return r.fragment("gallery_card", record.(models.GalleryItem))
}

func (r *Renderer) ProjectCard(record any) (Fragment, error) {
	return r.fragment("project_card", record.(models.Project))
}

func (r *Renderer) SkillBar(record any) (Fragment, error) {
	return r.fragment("skill_bar", record.(models.Skill))
}

func (r *Renderer) ExperienceItem(record any) (Fragment, error) {
	return r.fragment("experience_item", record.(models.Experience))
}

func (r *Renderer) EducationCard(record any) (Fragment, error) {
	return r.fragment("education_card", record.(models.Education))
}

func (r *Renderer) AwardCard(record any) (Fragment, error) {
	return r.fragment("award_card", record.(models.Award))
}

func (r *Renderer) LinkCard(record any) (Fragment, error) {
	link := record.(models.Link)
	return r.fragment("link_card", linkView{Link: link, Icon: linkIcon(link.Type)})
}

func (r *Renderer) ProfileCard(record any) (Fragment, error) {
	return r.fragment("profile_card", record.(*models.Profile))
}
