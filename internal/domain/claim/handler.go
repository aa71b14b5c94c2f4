package claim

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medclaims/medclaims/internal/platform/apperr"
	"github.com/medclaims/medclaims/internal/platform/auth"
	"github.com/medclaims/medclaims/internal/platform/upload"
)

type Handler struct {
	svc  *Service
	docs upload.Store
}

func NewHandler(svc *Service, docs upload.Store) *Handler {
	return &Handler{svc: svc, docs: docs}
}

// RegisterRoutes mounts the claim endpoints on g, which already carries the
// token middleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Submit, auth.RequireRole(auth.RolePatient))
	g.GET("/all", h.ListAll, auth.RequireRole(auth.RoleInsurer))
	g.GET("/my-claims", h.ListMine, auth.RequireRole(auth.RolePatient))
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Review, auth.RequireRole(auth.RoleInsurer))
}

func (h *Handler) Submit(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	in := SubmitInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Description: c.FormValue("description"),
	}
	if raw := c.FormValue("claimAmount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperr.Validation("claimAmount", "claim amount must be a number")
		}
		in.ClaimAmount = amount
	}

	path, err := h.saveDocument(c)
	if err != nil {
		return err
	}
	in.Document = path

	cl, err := h.svc.Submit(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *Handler) saveDocument(c echo.Context) (string, error) {
	fh, err := c.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", apperr.Validation("document", "a supporting document is required")
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path, err := h.docs.Save(fh.Filename, fh.Header.Get("Content-Type"), src)
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		return "", apperr.Validation("document", "only jpeg, jpg, png, and pdf files are allowed")
	case errors.Is(err, upload.ErrFileTooLarge):
		return "", apperr.Validation("document", "document must be 5 MB or smaller")
	case errors.Is(err, upload.ErrMissingFileName):
		return "", apperr.Validation("document", "a supporting document is required")
	case err != nil:
		return "", err
	}
	return path, nil
}

func (h *Handler) ListAll(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	items, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Claim{}
	}
	return c.JSON(http.StatusOK, items)
}

// parseFilter reads listing filters off the query string. The date range
// only applies when both bounds are supplied; amount bounds apply
// independently.
func parseFilter(c echo.Context) (Filter, error) {
	var f Filter

	if raw := c.QueryParam("status"); raw != "" {
		st, err := ParseStatus(raw)
		if err != nil {
			return f, apperr.Validation("status", err.Error())
		}
		f.Status = &st
	}

	start, err := parseDateParam(c, "startDate")
	if err != nil {
		return f, err
	}
	end, err := parseDateParam(c, "endDate")
	if err != nil {
		return f, err
	}
	if start != nil && end != nil {
		f.StartDate = start
		f.EndDate = end
	}

	if raw := c.QueryParam("minAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, apperr.Validation("minAmount", "minAmount must be a number")
		}
		f.MinAmount = &v
	}
	if raw := c.QueryParam("maxAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, apperr.Validation("maxAmount", "maxAmount must be a number")
		}
		f.MaxAmount = &v
	}
	return f, nil
}

func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validation(name, "must be an ISO date")
}

func (h *Handler) ListMine(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	items, err := h.svc.ListByOwner(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Claim{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) Review(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rev Review
	if err := c.Bind(&rev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl, err := h.svc.Review(c.Request().Context(), caller, id, rev)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cl)
}
