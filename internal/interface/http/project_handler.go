package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/application"
	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/pkg/response"
	"github.com/satriajanaka/erp-backend/pkg/validation"
)

type ProjectHandler struct {
	Svc    *application.ProjectService
	Logger *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger}
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Department  *int64  `json:"department" binding:"required"`
	EmployeeIDs []int64 `json:"employee_ids"`
	IsActive    *bool   `json:"is_active"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type updateProjectRequest struct {
	Name        *string      `json:"name"`
	Department  optionalID   `json:"department"`
	EmployeeIDs *[]int64     `json:"employee_ids"`
	IsActive    *bool        `json:"is_active"`
	StartDate   optionalDate `json:"start_date"`
	EndDate     optionalDate `json:"end_date"`
}

type projectResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Department     *int64  `json:"department"`
	DepartmentName *string `json:"department_name"`
	EmployeeIDs    []int64 `json:"employee_ids"`
	IsActive       bool    `json:"is_active"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
}

func toProjectResponse(p *entity.Project) projectResponse {
	ids := p.EmployeeIDs
	if ids == nil {
		ids = []int64{}
	}
	return projectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Department:     p.DepartmentID,
		DepartmentName: p.DepartmentName,
		EmployeeIDs:    ids,
		IsActive:       p.IsActive,
		StartDate:      formatDate(p.StartDate),
		EndDate:        formatDate(p.EndDate),
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	q := repository.ProjectQuery{
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Page:       pageParams(c),
	}
	q.OrderBy, q.Desc = ordering(c, "name", "start_date", "end_date")
	if raw := c.Query("is_active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"is_active": "must be a boolean value"})
			c.JSON(resp.Status, resp)
			return
		}
		q.IsActive = &b
	}

	projs, total, err := h.Svc.List(c.Request.Context(), principal(c), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]projectResponse, 0, len(projs))
	for i := range projs {
		out = append(out, toProjectResponse(&projs[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "projects", listMeta(q.Page, total))
	c.JSON(resp.Status, resp)
}

func (h *ProjectHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toProjectResponse(p), "project", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	in := application.CreateProjectInput{
		Name:         req.Name,
		DepartmentID: req.Department,
		EmployeeIDs:  req.EmployeeIDs,
		IsActive:     req.IsActive,
		StartDate:    parseDate(req.StartDate),
		EndDate:      parseDate(req.EndDate),
	}
	p, err := h.Svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, toProjectResponse(p), "project created", nil)
	c.JSON(resp.Status, resp)
}

// Update serves both PUT and PATCH with partial semantics.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	in := application.UpdateProjectInput{
		Name:         req.Name,
		DepartmentID: req.Department.toPatch(),
		EmployeeIDs:  req.EmployeeIDs,
		IsActive:     req.IsActive,
		StartDate:    req.StartDate.toPatch(),
		EndDate:      req.EndDate.toPatch(),
	}
	p, err := h.Svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toProjectResponse(p), "project updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProjectHandler) Destroy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
