package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/thinknotes-be/service"
	"github.com/tieubaoca/thinknotes-be/types"
)

type UploadHandler struct {
	studyService *service.StudyService
}

func NewUploadHandler(studyService *service.StudyService) *UploadHandler {
	return &UploadHandler{
		studyService: studyService,
	}
}

// HandleUpload accepts a multipart "file" field plus an optional return_pdf
// query flag (default true) and runs the study pipeline on it.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	returnPDF := true
	if v := c.Query("return_pdf"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			returnPDF = parsed
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Failed to read file",
		})
		return
	}

	resp, err := h.studyService.Process(c.Request.Context(), data, header.Filename, returnPDF)
	if err != nil {
		status, message := uploadErrorResponse(err)
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: message,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// uploadErrorResponse maps pipeline errors to HTTP status classes: client
// mistakes get detail, upstream AI failures become a gateway error.
func uploadErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "File too large (max 10MB)."
	case errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrExtractionFailed),
		errors.Is(err, types.ErrEmptyDocument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, types.ErrGenerationFailed):
		log.Println("AI generation failed:", err)
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
