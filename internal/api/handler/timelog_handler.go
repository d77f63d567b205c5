package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chronolog/timetrack-system/internal/api/middleware"
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
	"github.com/chronolog/timetrack-system/internal/pkg/chrono"
)

//go:embed templates/export.gohtml
var templateFS embed.FS

var exportTemplate = template.Must(template.ParseFS(templateFS, "templates/export.gohtml"))

// TimelogHandler handles the timelog CRUD and export routes. All visibility
// and ownership decisions live in the service.
type TimelogHandler struct {
	timelogService ports.TimelogService
}

func NewTimelogHandler(timelogService ports.TimelogService) *TimelogHandler {
	return &TimelogHandler{timelogService: timelogService}
}

// List returns the caller's visible timelogs, optionally narrowed by an
// inclusive fromDate/toDate range in DDMMMYYYY form.
//
// @Summary      List visible timelogs
// @Tags         timelogs
// @Produce      json
// @Security     BearerAuth
// @Param        fromDate  query     string  false  "Inclusive start date (e.g. 15Jun2020)"
// @Param        toDate    query     string  false  "Inclusive end date (e.g. 20Jun2020)"
// @Success      200       {object}  timelogsResponse
// @Failure      400       {object}  errorResponse
// @Router       /timelogs [get]
func (h *TimelogHandler) List(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	query, err := dateRangeQuery(c)
	if err != nil {
		return err
	}

	details, err := h.timelogService.List(c.Request().Context(), authUser, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimelogsResponse(details))
}

// ExportHTML renders the caller's visible timelogs as a grouped HTML document
// served as an attachment.
//
// @Summary      Export timelogs as HTML
// @Tags         timelogs
// @Produce      html
// @Security     BearerAuth
// @Param        fromDate  query  string  false  "Inclusive start date"
// @Param        toDate    query  string  false  "Inclusive end date"
// @Success      200
// @Router       /timelogs.html [get]
func (h *TimelogHandler) ExportHTML(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	query, err := dateRangeQuery(c)
	if err != nil {
		return err
	}

	report, err := h.timelogService.Export(c.Request().Context(), authUser, query)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="time_records.html"`)
	res.WriteHeader(http.StatusOK)
	return exportTemplate.Execute(res, toExportData(report))
}

// Get returns a single timelog by ID.
func (h *TimelogHandler) Get(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	detail, err := h.timelogService.Get(c.Request().Context(), authUser, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimelogResponse(detail))
}

// Create records a new timelog.
//
// @Summary      Create a timelog
// @Tags         timelogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimelogRequest  true  "New timelog"
// @Success      200   {object}  timelogResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /timelogs/timelog [put]
func (h *TimelogHandler) Create(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	var req createTimelogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Date == "" {
		return domain.BadRequestf("date is required to create a timelog")
	}
	date, err := chrono.ParseAPIDate(req.Date)
	if err != nil {
		return domain.BadRequestf("%s", err.Error())
	}
	if req.Minutes == nil {
		return domain.ValidationError("minutes")
	}

	detail, err := h.timelogService.Create(c.Request().Context(), authUser, ports.CreateTimelogInput{
		UserID:      req.UserID,
		Description: req.Description,
		Date:        date,
		Minutes:     *req.Minutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimelogResponse(detail))
}

// Update applies a partial update to a timelog.
func (h *TimelogHandler) Update(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	var req updateTimelogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateTimelogInput{
		UserID:      req.UserID,
		Description: req.Description,
		Minutes:     req.Minutes,
	}
	if req.Date != nil {
		date, err := chrono.ParseAPIDate(*req.Date)
		if err != nil {
			return domain.BadRequestf("%s", err.Error())
		}
		input.Date = &date
	}

	detail, err := h.timelogService.Update(c.Request().Context(), authUser, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimelogResponse(detail))
}

// Delete removes a timelog.
func (h *TimelogHandler) Delete(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	if err := h.timelogService.Delete(c.Request().Context(), authUser, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// dateRangeQuery parses the optional fromDate/toDate query parameters into an
// inclusive range: fromDate is taken at start of day, toDate at end of day.
func dateRangeQuery(c echo.Context) (ports.TimelogQuery, error) {
	var query ports.TimelogQuery
	if from := c.QueryParam("fromDate"); from != "" {
		parsed, err := chrono.ParseAPIDate(from)
		if err != nil {
			return query, domain.BadRequestf("%s", err.Error())
		}
		query.From = parsed
	}
	if to := c.QueryParam("toDate"); to != "" {
		parsed, err := chrono.ParseAPIDate(to)
		if err != nil {
			return query, domain.BadRequestf("%s", err.Error())
		}
		query.To = chrono.EndOfDay(parsed)
	}
	return query, nil
}
