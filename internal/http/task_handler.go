package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/pdf"
	"task-tracker.com/task-tracker/internal/storage"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var (
		req   dto.CreateTaskRequest
		files []storage.File
	)

	if isMultipart(c) {
		uploads, closeAll, form, err := taskFiles(c)
		if err != nil {
			return err
		}
		defer closeAll()
		files = uploads

		if req, err = createTaskFromForm(form); err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.CreateTask(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), middleware.SubjectID(c), in, files)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	var req dto.TaskFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	filter, err := validators.TaskFilter(&req)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	var req dto.TaskFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	filter, err := validators.TaskFilter(&req)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListMyTasks(c.Request().Context(), middleware.SubjectID(c), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) Dashboard(c echo.Context) error {
	var req dto.DashboardFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := validators.Struct(&req); err != nil {
		return err
	}

	targetDate, err := validators.DateRange(req.FromDate, req.ToDate)
	if err != nil {
		return err
	}

	dashboard, err := h.tasks.Dashboard(c.Request().Context(), targetDate)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) UserReport(c echo.Context) error {
	var req dto.UserReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := validators.Struct(&req); err != nil {
		return err
	}

	targetDate, err := validators.DateRange(req.FromDate, req.ToDate)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	report, err := h.tasks.UserReport(ctx, req.UserID, targetDate)
	if err != nil {
		return err
	}

	if req.Format != "pdf" {
		return c.JSON(http.StatusOK, report)
	}

	user, err := h.users.GetProfileByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	data := pdf.UserReportData{
		UserID:      req.UserID,
		GeneratedAt: time.Now(),
		Report:      *report,
	}
	if user.Name != nil {
		data.UserName = *user.Name
	}
	if _, _, ok := targetDate.Bounds(); ok {
		data.From, data.To = targetDate.From, targetDate.To
	}

	body, err := h.reports.RenderUserReport(data)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "user-report-"+req.UserID+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", body)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var (
		req   dto.UpdateTaskRequest
		files []storage.File
	)

	if isMultipart(c) {
		uploads, closeAll, form, err := taskFiles(c)
		if err != nil {
			return err
		}
		defer closeAll()
		files = uploads

		if req, err = updateTaskFromForm(form); err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.UpdateTask(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), id, in, files)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	status, err := validators.TaskStatus(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.UpdateTaskStatus(c.Request().Context(), id, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
