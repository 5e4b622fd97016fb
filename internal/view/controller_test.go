package view_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NKTHUAN-2K5/portfolio/internal/view"
)

func TestController_DefaultsToFirstSection(t *testing.T) {
	c := view.NewController([]string{"profile", "stories", "skills"})
	assert.Equal(t, "profile", c.Active())
}

func TestController_Activate(t *testing.T) {
	c := view.NewController([]string{"profile", "stories"})

	require.NoError(t, c.Activate("stories"))
	assert.Equal(t, "stories", c.Active())

	// Unknown sections are rejected and the active one is untouched.
	err := c.Activate("bogus")
	require.ErrorIs(t, err, view.ErrUnknownSection)
	assert.Equal(t, "stories", c.Active())
}

func TestController_ConcurrentActivate(t *testing.T) {
	c := view.NewController([]string{"skills", "awards"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		section := "skills"
		if i%2 == 1 {
			section = "awards"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Activate(section))
			_ = c.Active()
		}()
	}
	wg.Wait()

	assert.Contains(t, []string{"skills", "awards"}, c.Active())
}

func TestController_SectionsKeepOrder(t *testing.T) {
	order := []string{"profile", "stories", "gallery"}
	c := view.NewController(order)
	assert.Equal(t, order, c.Sections())
}

func TestFormPanel_Lifecycle(t *testing.T) {
	var p view.FormPanel
	assert.False(t, p.Visible())
	assert.Equal(t, view.PanelHidden, p.State())

	p.Open()
	assert.True(t, p.Visible())
	assert.Equal(t, view.PanelCreate, p.State())
	assert.Zero(t, p.RecordID())

	p.Edit(42)
	assert.Equal(t, view.PanelEdit, p.State())
	assert.Equal(t, int64(42), p.RecordID())

	p.SubmitSuccess()
	assert.False(t, p.Visible())
	assert.Zero(t, p.RecordID())
}

func TestFormPanel_CancelDiscardsRecord(t *testing.T) {
	var p view.FormPanel
	p.Edit(7)
	p.Cancel()

	assert.False(t, p.Visible())
	assert.Zero(t, p.RecordID())
}

func TestPanelState_String(t *testing.T) {
	assert.Equal(t, "hidden", view.PanelHidden.String())
	assert.Equal(t, "create", view.PanelCreate.String())
	assert.Equal(t, "edit", view.PanelEdit.String())
}
