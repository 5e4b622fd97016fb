package render

// AdminItem is the uniform list-row view for any record in the admin
// panel: a heading, optional meta badges, and edit/delete actions.
type AdminItem struct {
	Section  string
	ID       int64
	Title    string
	Subtitle string
	Body     string
	Meta     []string
	Images   []string
}

// AdminItemCard renders one admin list row.
func (r *Renderer) AdminItemCard(record any) (Fragment, error) {
	return r.fragment("admin_item", record.(AdminItem))
}
