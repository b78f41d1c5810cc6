package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

var errInvalidPage = echo.NewHTTPError(http.StatusNotFound, echo.Map{"detail": "Invalid page."})

// parseID reads a numeric path parameter. Anything else cannot name a row.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	return uint(id), nil
}

func pageParams(c echo.Context, size int) (pagination.Params, error) {
	p, err := pagination.Parse(c.QueryParam("page"), size)
	if err != nil {
		return pagination.Params{}, errInvalidPage
	}
	return p, nil
}

func respondPage[T any](c echo.Context, p pagination.Params, total int64, results []T) error {
	page, err := pagination.New(requestURL(c), p, total, results)
	if err != nil {
		return errInvalidPage
	}
	return c.JSON(http.StatusOK, page)
}

func requestURL(c echo.Context) *url.URL {
	req := c.Request()
	return &url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: req.URL.RawQuery,
	}
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

func validationError(errs validators.FieldErrors) error {
	return echo.NewHTTPError(http.StatusBadRequest, errs)
}

func notFound(msg string) error {
	return echo.NewHTTPError(http.StatusNotFound, msg)
}

// bindAndValidate binds req and runs its struct tags. Bind failures are returned as
// errors; rule failures come back as FieldErrors so callers can add their own.
func bindAndValidate(c echo.Context, req interface{}) (validators.FieldErrors, error) {
	if err := c.Bind(req); err != nil && !errors.Is(err, io.EOF) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	errs := validators.FieldErrors{}
	if err := c.Validate(req); err != nil {
		var fe validators.FieldErrors
		if !errors.As(err, &fe) {
			return nil, err
		}
		errs.Merge(fe)
	}
	return errs, nil
}

// optionalFile returns the uploaded file called name, or nil when the request has none
func optionalFile(c echo.Context, name string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart payload")
	}
	return fh, nil
}
