package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
)

func registerFileRoutes() {
	webserver.ApiPOST("/files", uploadFiles)
}

// uploadFiles stores every file part of a multipart request under the
// public root, grouped by field name (images/, documents/, general/),
// and returns the public-relative paths per field.
func uploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Multipart form expected", err.Error())
	}
	if len(form.File) == 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "No files uploaded", nil)
	}

	stored := make(map[string][]string, len(form.File))
	for field, fhs := range form.File {
		for _, fh := range fhs {
			rel, err := fileStore.Save(fh, field)
			if err != nil {
				return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to store upload", err.Error())
			}
			stored[field] = append(stored[field], rel)
		}
	}
	return okMessage(c, http.StatusCreated, echo.Map{"files": stored}, "Files uploaded successfully")
}
