package http

import (
	"inbox-srv/internal/model"
	"inbox-srv/internal/notification"
)

// --- Request DTOs ---

type createReq struct {
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	RecipientRoles []string `json:"recipient_roles"`
}

func (r createReq) toInput() notification.CreateInput {
	return notification.CreateInput{
		Title:          r.Title,
		Message:        r.Message,
		RecipientRoles: r.RecipientRoles,
	}
}

type readAllReq struct {
	IDs []string `json:"ids"`
}

// --- Response DTOs ---

// inboxResp carries the caller's unread notifications, newest first.
// Total is the badge count and always equals len(Items): the display cap is
// a client concern and never changes what the server reports.
type inboxResp struct {
	Items []model.Notification `json:"items"`
	Total int                  `json:"total"`
}

func newInboxResp(items []model.Notification) inboxResp {
	if items == nil {
		items = []model.Notification{}
	}
	return inboxResp{
		Items: items,
		Total: len(items),
	}
}
