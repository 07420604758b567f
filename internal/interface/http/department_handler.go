package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/application"
	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/pkg/response"
	"github.com/satriajanaka/erp-backend/pkg/validation"
)

type DepartmentHandler struct {
	Svc    *application.DepartmentService
	Logger *logrus.Logger
}

func NewDepartmentHandler(svc *application.DepartmentService, logger *logrus.Logger) *DepartmentHandler {
	return &DepartmentHandler{Svc: svc, Logger: logger}
}

type createDepartmentRequest struct {
	Name   string           `json:"name" binding:"required"`
	Budget *decimal.Decimal `json:"budget"`
}

type updateDepartmentRequest struct {
	Name   *string          `json:"name"`
	Budget *decimal.Decimal `json:"budget"`
}

type departmentResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Budget string `json:"budget"`
}

func toDepartmentResponse(d *entity.Department) departmentResponse {
	return departmentResponse{ID: d.ID, Name: d.Name, Budget: d.Budget.String()}
}

func (h *DepartmentHandler) List(c *gin.Context) {
	q := repository.DepartmentQuery{
		Search: c.Query("search"),
		Page:   pageParams(c),
	}
	q.OrderBy, q.Desc = ordering(c, "name", "budget")

	deps, total, err := h.Svc.List(c.Request.Context(), principal(c), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]departmentResponse, 0, len(deps))
	for i := range deps {
		out = append(out, toDepartmentResponse(&deps[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "departments", listMeta(q.Page, total))
	c.JSON(resp.Status, resp)
}

func (h *DepartmentHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := h.Svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toDepartmentResponse(d), "department", nil)
	c.JSON(resp.Status, resp)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	in := application.DepartmentInput{Name: req.Name}
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"budget": "must be greater than or equal to 0"})
			c.JSON(resp.Status, resp)
			return
		}
		in.Budget = *req.Budget
	}
	d, err := h.Svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, toDepartmentResponse(d), "department created", nil)
	c.JSON(resp.Status, resp)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if req.Budget != nil && req.Budget.IsNegative() {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"budget": "must be greater than or equal to 0"})
		c.JSON(resp.Status, resp)
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), principal(c), id, application.DepartmentPatch{Name: req.Name, Budget: req.Budget})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toDepartmentResponse(d), "department updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *DepartmentHandler) Destroy(c *gin.Context) {
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
