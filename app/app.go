package app

import (
	"github.com/mbolis/survey-portal/apiclient"
	"github.com/mbolis/survey-portal/config"
	"github.com/mbolis/survey-portal/session"
)

type App struct {
	*apiclient.Client
	*session.Store
	config.Config
}
