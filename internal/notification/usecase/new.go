package usecase

import (
	"inbox-srv/internal/notification"
	"inbox-srv/internal/notification/repository"
	pkgLog "inbox-srv/pkg/log"
)

type usecase struct {
	l    pkgLog.Logger
	repo repository.Repository
	pub  notification.Publisher
}

func New(l pkgLog.Logger, repo repository.Repository, pub notification.Publisher) notification.UseCase {
	return &usecase{
		l:    l,
		repo: repo,
		pub:  pub,
	}
}
