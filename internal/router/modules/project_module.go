package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
)

// ProjectModule registers the project resource routes behind auth.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Auth    gin.HandlerFunc
}

func NewProjectModule(h *handlers.ProjectHandler, auth gin.HandlerFunc) *ProjectModule {
	return &ProjectModule{Handler: h, Auth: auth}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.Use(m.Auth)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Retrieve)
		g.PUT("/:id", m.Handler.Update)
		g.PATCH("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Destroy)
	}
}
