package forms_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

func TestParseStory(t *testing.T) {
	v := url.Values{
		"id":       {"5"},
		"title":    {"Trip"},
		"content":  {"Long weekend"},
		"category": {"Travel"},
		"date":     {"2024-05-01"},
	}
	images := models.ImageList{"/uploads/a.jpg", "/uploads/b.jpg"}

	story, err := forms.ParseStory(v, images)
	require.NoError(t, err)
	assert.Equal(t, int64(5), story.ID)
	assert.Equal(t, "Trip", story.Title)
	assert.Equal(t, images, story.Images)
}

func TestParseStory_EmptyIDMeansCreate(t *testing.T) {
	v := url.Values{"title": {"New story"}}
	story, err := forms.ParseStory(v, nil)
	require.NoError(t, err)
	assert.Zero(t, story.ID)
}

func TestParseStory_TitleRequired(t *testing.T) {
	_, err := forms.ParseStory(url.Values{"title": {"   "}}, nil)
	require.ErrorIs(t, err, forms.ErrValidation)
}

func TestParseStory_DateDefaultsToToday(t *testing.T) {
	story, err := forms.ParseStory(url.Values{"title": {"Today"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), story.Date)
}

func TestParseSkill(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		want    models.Skill
		wantErr bool
	}{
		{
			name:   "level string becomes int",
			values: url.Values{"name": {"Go"}, "category": {"Backend"}, "level": {"80"}},
			want:   models.Skill{Name: "Go", Category: "Backend", Level: 80},
		},
		{
			name:   "bounds inclusive",
			values: url.Values{"name": {"Go"}, "level": {"100"}},
			want:   models.Skill{Name: "Go", Level: 100},
		},
		{
			name:    "level not a number",
			values:  url.Values{"name": {"Go"}, "level": {"eighty"}},
			wantErr: true,
		},
		{
			name:    "level above bounds",
			values:  url.Values{"name": {"Go"}, "level": {"101"}},
			wantErr: true,
		},
		{
			name:    "level below bounds",
			values:  url.Values{"name": {"Go"}, "level": {"-1"}},
			wantErr: true,
		},
		{
			name:    "name required",
			values:  url.Values{"level": {"50"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forms.ParseSkill(tt.values)
			if tt.wantErr {
				require.ErrorIs(t, err, forms.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProject_SplitsTechnologies(t *testing.T) {
	v := url.Values{
		"title":        {"Portfolio"},
		"technologies": {" Go , gin,  Redis ,,"},
	}
	p, err := forms.ParseProject(v)
	require.NoError(t, err)
	assert.Equal(t, models.TechList{"Go", "gin", "Redis"}, p.Technologies)
}

func TestParseProject_EmptyTechnologies(t *testing.T) {
	p, err := forms.ParseProject(url.Values{"title": {"Portfolio"}})
	require.NoError(t, err)
	assert.Empty(t, p.Technologies)
}

func TestParseGalleryItem_ImageRequired(t *testing.T) {
	_, err := forms.ParseGalleryItem(url.Values{"title": {"Sunset"}})
	require.ErrorIs(t, err, forms.ErrValidation)
	assert.Contains(t, err.Error(), "upload an image first")

	item, err := forms.ParseGalleryItem(url.Values{
		"title": {"Sunset"},
		"image": {"/uploads/sunset.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/sunset.jpg", item.Image)
}

func TestParseLink(t *testing.T) {
	link, err := forms.ParseLink(url.Values{
		"title": {"My article"},
		"url":   {"https://example.com/post"},
		"type":  {"article"},
	})
	require.NoError(t, err)
	assert.Equal(t, "article", link.Type)

	_, err = forms.ParseLink(url.Values{"title": {"No URL"}})
	require.ErrorIs(t, err, forms.ErrValidation)
}

func TestParseProfile_NestedSocialFields(t *testing.T) {
	p, err := forms.ParseProfile(url.Values{
		"name":            {"Owner"},
		"title":           {"Engineer"},
		"social.github":   {"https://github.com/owner"},
		"social.linkedin": {"https://linkedin.com/in/owner"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/owner", p.Social.GitHub)
	assert.Equal(t, "https://linkedin.com/in/owner", p.Social.LinkedIn)
	assert.Empty(t, p.Social.Facebook)
}

func TestParseID_Invalid(t *testing.T) {
	_, err := forms.ParseAward(url.Values{"id": {"abc"}, "title": {"Prize"}})
	require.ErrorIs(t, err, forms.ErrValidation)
}
