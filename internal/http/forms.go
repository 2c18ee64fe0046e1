package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/storage"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formString returns nil when the field is absent or blank.
func formString(form *multipart.Form, key string) *string {
	values := form.Value[key]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil
	}
	v := values[0]
	return &v
}

func formValue(form *multipart.Form, key string) string {
	if v := formString(form, key); v != nil {
		return *v
	}
	return ""
}

func formInt(form *multipart.Form, key string) (*int, error) {
	raw := formString(form, key)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, key+" must be an integer")
	}
	return &n, nil
}

// formStrings collects repeated fields, accepting both key and key[].
func formStrings(form *multipart.Form, key string) []string {
	var out []string
	for _, k := range []string{key, key + "[]"} {
		for _, v := range form.Value[k] {
			if strings.TrimSpace(v) != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// openFiles opens every uploaded part. The returned func closes them.
func openFiles(headers []*multipart.FileHeader, max int) ([]storage.File, func(), error) {
	if max > 0 && len(headers) > max {
		return nil, func() {}, apperrors.ErrTooManyFiles
	}

	var closers []multipart.File
	closeAll := func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}

	files := make([]storage.File, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload "+h.Filename)
		}
		closers = append(closers, f)
		files = append(files, storage.File{
			Filename:    h.Filename,
			ContentType: h.Header.Get(echo.HeaderContentType),
			Size:        h.Size,
			Content:     f,
		})
	}
	return files, closeAll, nil
}

func createTaskFromForm(form *multipart.Form) (dto.CreateTaskRequest, error) {
	storyPoints, err := formInt(form, "storyPoints")
	if err != nil {
		return dto.CreateTaskRequest{}, err
	}

	return dto.CreateTaskRequest{
		Title:                 formValue(form, "title"),
		Type:                  formValue(form, "type"),
		Priority:              formValue(form, "priority"),
		TargetCompletionDate:  formValue(form, "targetCompletionDate"),
		Description:           formValue(form, "description"),
		BusinessJustification: formValue(form, "businessJustification"),
		TechnicalRequirements: formString(form, "technicalRequirements"),
		Dependencies:          formString(form, "dependencies"),
		AcceptanceCriteria:    formValue(form, "acceptanceCriteria"),
		AssignedToID:          formValue(form, "assignedToId"),
		StoryPoints:           storyPoints,
		AdminPanelLink:        formString(form, "adminPanelLink"),
		Attachments:           formStrings(form, "attachments"),
	}, nil
}

func updateTaskFromForm(form *multipart.Form) (dto.UpdateTaskRequest, error) {
	storyPoints, err := formInt(form, "storyPoints")
	if err != nil {
		return dto.UpdateTaskRequest{}, err
	}
	progress, err := formInt(form, "progress")
	if err != nil {
		return dto.UpdateTaskRequest{}, err
	}

	return dto.UpdateTaskRequest{
		Title:                 formString(form, "title"),
		Type:                  formString(form, "type"),
		Priority:              formString(form, "priority"),
		TargetCompletionDate:  formString(form, "targetCompletionDate"),
		Description:           formString(form, "description"),
		BusinessJustification: formString(form, "businessJustification"),
		TechnicalRequirements: formString(form, "technicalRequirements"),
		Dependencies:          formString(form, "dependencies"),
		AcceptanceCriteria:    formString(form, "acceptanceCriteria"),
		AssignedToID:          formString(form, "assignedToId"),
		AdminPanelLink:        formString(form, "adminPanelLink"),
		Status:                formString(form, "status"),
		StoryPoints:           storyPoints,
		Progress:              progress,
		Attachments:           formStrings(form, "attachments"),
	}, nil
}

func profileFromForm(form *multipart.Form) dto.UpdateProfileRequest {
	return dto.UpdateProfileRequest{
		Name:      formString(form, "name"),
		BirthDate: formString(form, "birthDate"),
		Gender:    formString(form, "gender"),
		Phone:     formString(form, "phone"),
	}
}

// taskFiles reads the attachment parts of a task request.
func taskFiles(c echo.Context) ([]storage.File, func(), *multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	headers := append(form.File["files"], form.File["files[]"]...)
	files, closeAll, err := openFiles(headers, constants.MaxTaskAttachmentsPerRequest)
	if err != nil {
		return nil, func() {}, nil, err
	}
	return files, closeAll, form, nil
}
