package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/storage"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.CreateUser(&req)
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), middleware.SubjectID(c), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user.AdminView())
}

func (h *Handler) ListUsers(c echo.Context) error {
	var req dto.UserListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	filter, err := validators.UserFilter(&req)
	if err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.Request().Context(), middleware.SubjectID(c), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUserStatus(c echo.Context) error {
	var req dto.UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.UpdateUserStatus(&req)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateUserStatus(c.Request().Context(), middleware.SubjectID(c), c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user.AdminView())
}

func (h *Handler) GetProfile(c echo.Context) error {
	user, err := h.users.GetProfile(c.Request().Context(), middleware.SubjectID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) GetProfileByID(c echo.Context) error {
	user, err := h.users.GetProfileByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var (
		req   dto.UpdateProfileRequest
		photo *storage.File
	)

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		req = profileFromForm(form)

		if len(form.File["photo"]) > 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "only one photo can be uploaded")
		}
		files, closeAll, err := openFiles(form.File["photo"], 0)
		if err != nil {
			return err
		}
		defer closeAll()
		if len(files) == 1 {
			photo = &files[0]
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.UpdateProfile(&req)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), middleware.Claims(c), in, photo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), middleware.SubjectID(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.DeleteUserResponse{
		Success: true,
		Message: "user deleted",
	})
}

func (h *Handler) DeleteProfile(c echo.Context) error {
	if err := h.users.DeleteProfile(c.Request().Context(), middleware.SubjectID(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.DeleteUserResponse{
		Success: true,
		Message: "profile deleted",
	})
}
