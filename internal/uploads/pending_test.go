package uploads_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NKTHUAN-2K5/portfolio/internal/models"
	"github.com/NKTHUAN-2K5/portfolio/internal/uploads"
)

func TestPending_AddPreservesOrder(t *testing.T) {
	p := uploads.NewPending(nil)
	p.Add("/uploads/a.jpg")
	p.Add("/uploads/b.jpg")
	p.Add("/uploads/c.jpg")

	assert.Equal(t, models.ImageList{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}, p.Snapshot())
}

func TestPending_RemoveFirstMatchOnly(t *testing.T) {
	p := uploads.NewPending(models.ImageList{
		"/uploads/a.jpg", "/uploads/dup.jpg", "/uploads/b.jpg", "/uploads/dup.jpg",
	})

	require.True(t, p.Remove("/uploads/dup.jpg"))

	// The second duplicate stays, and relative order is untouched.
	assert.Equal(t, models.ImageList{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/dup.jpg"}, p.Snapshot())
}

func TestPending_RemoveAbsentIsNoOp(t *testing.T) {
	p := uploads.NewPending(models.ImageList{"/uploads/a.jpg"})
	require.False(t, p.Remove("/uploads/missing.jpg"))
	assert.Equal(t, 1, p.Len())
}

func TestPending_InitialCopyIsIndependent(t *testing.T) {
	initial := models.ImageList{"/uploads/a.jpg"}
	p := uploads.NewPending(initial)
	initial[0] = "/uploads/mutated.jpg"

	assert.Equal(t, models.ImageList{"/uploads/a.jpg"}, p.Snapshot())
}

func TestPending_SnapshotIsCopy(t *testing.T) {
	p := uploads.NewPending(models.ImageList{"/uploads/a.jpg", "/uploads/b.jpg"})
	snap := p.Snapshot()
	snap[0] = "/uploads/mutated.jpg"

	assert.Equal(t, models.ImageList{"/uploads/a.jpg", "/uploads/b.jpg"}, p.Snapshot())
}
