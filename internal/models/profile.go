package models

// Profile is the site owner's singleton record. It has no identifier:
// there is exactly one profile system-wide and it is only ever replaced
// as a whole via PUT.
type Profile struct {
	Name     string      `json:"name"`
	Title    string      `json:"title"`
	Bio      string      `json:"bio"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Location string      `json:"location"`
	Avatar   string      `json:"avatar,omitempty"`
	Social   SocialLinks `json:"social"`
}

// SocialLinks maps social networks to profile URLs. Empty values mean
// the network is not linked and must render nothing.
type SocialLinks struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
}
