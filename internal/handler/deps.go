package handler

import (
	"kchat/internal/app/hub"
	"kchat/internal/configs"
)

// AppDeps bundles the shared dependencies the HTTP handlers operate on.
type AppDeps struct {
	Hub    *hub.Hub
	Config *configs.AppConfig
}
