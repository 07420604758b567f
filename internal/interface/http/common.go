package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/application"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/internal/interface/middleware"
	"github.com/satriajanaka/erp-backend/pkg/response"
)

const dateLayout = "2006-01-02"

// principal fetches the principal set by the auth middleware. Routes are
// only registered behind it, so a missing principal is a wiring bug.
func principal(c *gin.Context) policy.Principal {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		panic("handler reached without auth middleware")
	}
	return p
}

// writeError translates service and repository errors into API responses.
// Out-of-scope reads surface as not-found so resource existence never leaks
// across department boundaries.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrPermissionDenied):
		resp := response.Error[any](c, http.StatusForbidden, "permission denied", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, repository.ErrNotFound):
		resp := response.Error[any](c, http.StatusNotFound, "not found", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, repository.ErrDuplicate):
		resp := response.Error[any](c, http.StatusBadRequest, "duplicate value", err.Error())
		c.JSON(resp.Status, resp)
	case errors.Is(err, repository.ErrInvalidReference):
		resp := response.Error[any](c, http.StatusBadRequest, "referenced row does not exist", err.Error())
		c.JSON(resp.Status, resp)
	case errors.Is(err, application.ErrInvalidCredentials):
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		c.JSON(resp.Status, resp)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		resp := response.Error[any](c, http.StatusNotFound, "not found", nil)
		c.JSON(resp.Status, resp)
		return 0, false
	}
	return id, true
}

// pageParams parses the shared pagination query parameters.
func pageParams(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.Query("page_size"))
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return repository.Page{Number: page, Size: size}
}

// ordering parses the `field` / `-field` ordering parameter against a
// whitelist; anything else is ignored.
func ordering(c *gin.Context, allowed ...string) (string, bool) {
	raw := c.Query("ordering")
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	for _, a := range allowed {
		if field == a {
			return field, desc
		}
	}
	return "", false
}

func listMeta(page repository.Page, total int64) response.ListMeta {
	return response.ListMeta{Page: page.Number, PageSize: page.Size, Total: total}
}

// optionalID distinguishes an absent JSON field from an explicit null,
// needed for nullable department references in partial updates.
type optionalID struct {
	Present bool
	Value   *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o optionalID) toPatch() repository.OptionalInt64 {
	return repository.OptionalInt64{Present: o.Present, Value: o.Value}
}

// optionalDate is optionalID's shape for nullable `YYYY-MM-DD` fields.
type optionalDate struct {
	Present bool
	Value   *time.Time
}

func (o *optionalDate) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("must match date format %s", dateLayout)
	}
	o.Value = &t
	return nil
}

func (o optionalDate) toPatch() repository.OptionalDate {
	return repository.OptionalDate{Present: o.Present, Value: o.Value}
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
