package http

import (
	"inbox-srv/internal/notification"
	"inbox-srv/pkg/log"
)

type Handler struct {
	uc     notification.UseCase
	logger log.Logger
}

func New(uc notification.UseCase, logger log.Logger) *Handler {
	return &Handler{
		uc:     uc,
		logger: logger,
	}
}
