package models

// Participant roles
const (
	RoleClient     = "client"
	RoleAdmin      = "admin"
	RoleConsultant = "consultant"
)

// Participant identifies one side of a message
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Message is one unit of communication. Flags are mutated in place; a message is only
// physically removed by a permanent delete.
type Message struct {
	ID        string      `json:"id"`
	ThreadID  string      `json:"threadId"`
	From      Participant `json:"from"`
	To        Participant `json:"to"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
	Timestamp string      `json:"timestamp"` // ISO-8601 as written by the sender
	Read      bool        `json:"read"`
	Starred   bool        `json:"starred"`
	Archived  bool        `json:"archived"`
	Deleted   bool        `json:"deleted"`
	ReplyTo   *string     `json:"replyTo,omitempty"`
}

// Thread is derived from the messages sharing a ThreadID and is never persisted
type Thread struct {
	ID              string        `json:"id"`
	Subject         string        `json:"subject"`
	Participants    []Participant `json:"participants"`
	LastMessage     string        `json:"lastMessage"`
	LastMessageTime string        `json:"lastMessageTime"`
	UnreadCount     int           `json:"unreadCount"`
	MessageCount    int           `json:"messageCount"`
	Starred         bool          `json:"starred"`
	Archived        bool          `json:"archived"`
}

// ViewCounts holds the badge counts shown next to each mailbox view
type ViewCounts struct {
	InboxUnread int `json:"inboxUnread"`
	Inbox       int `json:"inbox"`
	Starred     int `json:"starred"`
	Archived    int `json:"archived"`
	Trash       int `json:"trash"`
}

// MessageFlagPatch carries optional flag changes; nil fields are left untouched
type MessageFlagPatch struct {
	Read     *bool `json:"read,omitempty"`
	Starred  *bool `json:"starred,omitempty"`
	Archived *bool `json:"archived,omitempty"`
	Deleted  *bool `json:"deleted,omitempty"`
}

// Apply copies every set flag onto m and reports whether anything changed
func (p MessageFlagPatch) Apply(m *Message) bool {
	changed := false
	set := func(dst *bool, src *bool) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&m.Read, p.Read)
	set(&m.Starred, p.Starred)
	set(&m.Archived, p.Archived)
	set(&m.Deleted, p.Deleted)
	return changed
}

// Empty reports whether the patch sets no flag at all
func (p MessageFlagPatch) Empty() bool {
	return p.Read == nil && p.Starred == nil && p.Archived == nil && p.Deleted == nil
}
