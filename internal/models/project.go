package models

// ProjectFlags are the per-client view flags for one project in the inbox
type ProjectFlags struct {
	Read     bool `json:"read"`
	Starred  bool `json:"starred"`
	Archived bool `json:"archived"`
	Flagged  bool `json:"flagged"`
}

// ProjectFlagPatch carries optional flag changes; nil fields are left untouched
type ProjectFlagPatch struct {
	Read     *bool `json:"read,omitempty"`
	Starred  *bool `json:"starred,omitempty"`
	Archived *bool `json:"archived,omitempty"`
	Flagged  *bool `json:"flagged,omitempty"`
}

// Apply returns f with every set field of the patch applied
func (p ProjectFlagPatch) Apply(f ProjectFlags) ProjectFlags {
	if p.Read != nil {
		f.Read = *p.Read
	}
	if p.Starred != nil {
		f.Starred = *p.Starred
	}
	if p.Archived != nil {
		f.Archived = *p.Archived
	}
	if p.Flagged != nil {
		f.Flagged = *p.Flagged
	}
	return f
}

// ClientProfile is the canonical client record served by the backend
type ClientProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	ProjectIDs []string `json:"projectIds"`
}
