package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RoleList is the set of role tags a notification is addressed to.
//
// Payloads arrive from external collaborators and may be malformed (not an
// array, or entries that are not strings). UnmarshalJSON normalizes such
// shapes to an empty list instead of failing, so downstream logic only ever
// sees well-formed []string values.
type RoleList []string

// UnmarshalJSON tolerates malformed role lists: anything that is not a JSON
// array yields an empty list, and non-string entries are dropped.
func (r *RoleList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = nil
		return nil
	}

	roles := make(RoleList, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		roles = append(roles, s)
	}
	*r = roles
	return nil
}

// Matches reports whether the list contains sessionRole under
// case-insensitive comparison. An empty list or empty session role never
// matches. Total and side-effect free.
func (r RoleList) Matches(sessionRole string) bool {
	if sessionRole == "" {
		return false
	}
	for _, role := range r {
		if strings.EqualFold(role, sessionRole) {
			return true
		}
	}
	return false
}

// Notification represents a role-targeted notification record.
//
// Seq is the server-assigned monotonic sequence number and is the documented
// ordering key for the inbox: higher seq means more recent, and the inbox is
// always returned newest (highest seq) first.
type Notification struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RecipientRoles RoleList  `json:"recipient_roles"`
	CreatedAt      time.Time `json:"created_at"`

	// ReadBy holds the user IDs that acknowledged the notification.
	// Server-side concern only; it is never sent to clients.
	ReadBy []string `json:"-"`
}

// UnreadFor reports whether the notification is still unread for userID.
func (n Notification) UnreadFor(userID string) bool {
	for _, id := range n.ReadBy {
		if id == userID {
			return false
		}
	}
	return true
}
