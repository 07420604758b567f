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

type EmployeeHandler struct {
	Svc    *application.EmployeeService
	Logger *logrus.Logger
}

func NewEmployeeHandler(svc *application.EmployeeService, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{Svc: svc, Logger: logger}
}

type nestedUserCreate struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Role      string `json:"role" binding:"omitempty,role"`
	Password  string `json:"password" binding:"omitempty,pwd"`
}

type createEmployeeRequest struct {
	User       nestedUserCreate `json:"user" binding:"required"`
	Department *int64           `json:"department"`
	Salary     *decimal.Decimal `json:"salary"`
	JobTitle   string           `json:"job_title"`
}

type nestedUserPatch struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Role      *string `json:"role" binding:"omitempty,role"`
	Password  *string `json:"password" binding:"omitempty,pwd"`
}

type updateEmployeeRequest struct {
	User       *nestedUserPatch `json:"user"`
	Department optionalID       `json:"department"`
	Salary     *decimal.Decimal `json:"salary"`
	JobTitle   *string          `json:"job_title"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type employeeResponse struct {
	ID             int64        `json:"id"`
	User           userResponse `json:"user"`
	Department     *int64       `json:"department"`
	DepartmentName *string      `json:"department_name"`
	Salary         string       `json:"salary"`
	JobTitle       string       `json:"job_title"`
}

func toEmployeeResponse(e *entity.Employee) employeeResponse {
	return employeeResponse{
		ID: e.ID,
		User: userResponse{
			ID:        e.User.ID,
			Username:  e.User.Username,
			FirstName: e.User.FirstName,
			LastName:  e.User.LastName,
			Email:     e.User.Email,
			Role:      string(e.User.Role),
		},
		Department:     e.DepartmentID,
		DepartmentName: e.DepartmentName,
		Salary:         e.Salary.String(),
		JobTitle:       e.JobTitle,
	}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	q := repository.EmployeeQuery{
		Department: c.Query("department"),
		JobTitle:   c.Query("job_title"),
		Search:     c.Query("search"),
		Page:       pageParams(c),
	}
	q.OrderBy, q.Desc = ordering(c, "salary", "username")
	if raw := c.Query("min_salary"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"min_salary": "must be a valid number"})
			c.JSON(resp.Status, resp)
			return
		}
		q.MinSalary = &d
	}
	if raw := c.Query("max_salary"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"max_salary": "must be a valid number"})
			c.JSON(resp.Status, resp)
			return
		}
		q.MaxSalary = &d
	}

	emps, total, err := h.Svc.List(c.Request.Context(), principal(c), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]employeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, toEmployeeResponse(&emps[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "employees", listMeta(q.Page, total))
	c.JSON(resp.Status, resp)
}

func (h *EmployeeHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toEmployeeResponse(e), "employee", nil)
	c.JSON(resp.Status, resp)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	in := application.CreateEmployeeInput{
		User: application.NewUserInput{
			Username:  req.User.Username,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
			Email:     req.User.Email,
			Role:      entity.Role(req.User.Role),
			Password:  req.User.Password,
		},
		DepartmentID: req.Department,
		JobTitle:     req.JobTitle,
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"salary": "must be greater than or equal to 0"})
			c.JSON(resp.Status, resp)
			return
		}
		in.Salary = *req.Salary
	}
	e, err := h.Svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, toEmployeeResponse(e), "employee created", nil)
	c.JSON(resp.Status, resp)
}

// Update serves both PUT and PATCH with partial semantics; PUT clients are
// expected to send the full document.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"salary": "must be greater than or equal to 0"})
		c.JSON(resp.Status, resp)
		return
	}
	in := application.UpdateEmployeeInput{
		DepartmentID: req.Department.toPatch(),
		Salary:       req.Salary,
		JobTitle:     req.JobTitle,
	}
	if req.User != nil {
		up := &application.UserPatchInput{
			Username:  req.User.Username,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
			Email:     req.User.Email,
			Password:  req.User.Password,
		}
		if req.User.Role != nil {
			role := entity.Role(*req.User.Role)
			up.Role = &role
		}
		in.User = up
	}
	e, err := h.Svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toEmployeeResponse(e), "employee updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *EmployeeHandler) Destroy(c *gin.Context) {
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
