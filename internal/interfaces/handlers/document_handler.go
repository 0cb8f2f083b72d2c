package handlers

import (
	"io"
	"net/http"

	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/interfaces/dto"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentSvc *services.DocumentService
	uploadSvc   *services.UploadService
	maxSize     int64
}

func NewDocumentHandler(
	documentSvc *services.DocumentService,
	uploadSvc *services.UploadService,
	maxSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		documentSvc: documentSvc,
		uploadSvc:   uploadSvc,
		maxSize:     maxSize,
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxSize); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "failed to parse multipart form")
		return
	}

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "file is required")
		return
	}
	defer file.Close()

	// read one byte past the limit so an oversized file is detected
	// instead of silently truncated
	content, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "failed to read file")
		return
	}
	if int64(len(content)) > h.maxSize {
		respondWithError(c, http.StatusRequestEntityTooLarge, 413, "file exceeds the maximum allowed size")
		return
	}

	user := currentUser(c)
	doc, err := h.uploadSvc.Upload(c.Request.Context(), user.ID, services.UploadInput{
		Filename:      fileHeader.Filename,
		Content:       content,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		WorkspaceID:   c.Request.FormValue("workspace_id"),
		WorkspaceName: c.Request.FormValue("workspace_name"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentUploadResponse{
		Message:  "Document uploaded successfully",
		Document: doc.Filename,
	})
}

func (h *DocumentHandler) GetList(c *gin.Context) {
	user := currentUser(c)
	docs, err := h.documentSvc.ListVisible(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentListResponse{Documents: docs})
}

func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "document ID is required")
		return
	}

	user := currentUser(c)
	record, content, contentType, err := h.documentSvc.Download(c.Request.Context(), docID, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+record.Filename+`"`)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, content)
}

func (h *DocumentHandler) Search(c *gin.Context) {
	var req dto.DocumentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)
	summary, err := h.documentSvc.Search(c.Request.Context(), req.DocName, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, summary)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "document ID is required")
		return
	}

	user := currentUser(c)
	if err := h.documentSvc.Delete(c.Request.Context(), docID, user.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.DocumentDeleteResponse{ID: docID, Success: true}, nil)
}
