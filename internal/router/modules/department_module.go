package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
)

// DepartmentModule registers the department resource routes behind auth.
type DepartmentModule struct {
	Handler *handlers.DepartmentHandler
	Auth    gin.HandlerFunc
}

func NewDepartmentModule(h *handlers.DepartmentHandler, auth gin.HandlerFunc) *DepartmentModule {
	return &DepartmentModule{Handler: h, Auth: auth}
}

func (m *DepartmentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/departments")
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
