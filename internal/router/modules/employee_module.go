package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
)

// EmployeeModule registers the employee resource routes behind auth.
type EmployeeModule struct {
	Handler *handlers.EmployeeHandler
	Auth    gin.HandlerFunc
}

func NewEmployeeModule(h *handlers.EmployeeHandler, auth gin.HandlerFunc) *EmployeeModule {
	return &EmployeeModule{Handler: h, Auth: auth}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/employees")
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
