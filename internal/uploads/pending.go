package uploads

import (
	"sync"

	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

// Pending is the ordered, form-scoped collection of uploaded asset URLs
// not yet persisted to a record. It is safe for concurrent appends from
// in-flight uploads.
type Pending struct {
	mu   sync.Mutex
	urls models.ImageList
}

func NewPending(initial models.ImageList) *Pending {
	return &Pending{urls: append(models.ImageList(nil), initial...)}
}

// Add appends a URL at the end.
func (p *Pending) Add(url string) {
	p.mu.Lock()
	p.urls = append(p.urls, url)
	p.mu.Unlock()
}

// Remove deletes exactly the first entry matching url, leaving every
// other entry in its original relative order. Removing an absent URL is
// a no-op.
func (p *Pending) Remove(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, u := range p.urls {
		if u == url {
			p.urls = append(p.urls[:i], p.urls[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current URLs in order.
func (p *Pending) Snapshot() models.ImageList {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append(models.ImageList(nil), p.urls...)
}

func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.urls)
}
