package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/export"
	"pocketledger/internal/models"
	"pocketledger/internal/services"
)

// DownloadHandler handles exports and the download history.
type DownloadHandler struct {
	exportService services.ExportServicer
	auditService  services.AuditServicer
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(exportService services.ExportServicer, auditService services.AuditServicer) *DownloadHandler {
	return &DownloadHandler{exportService: exportService, auditService: auditService}
}

// CreateDownloadRequest selects the format and date bounds of an export
type CreateDownloadRequest struct {
	Format   models.DownloadFormat `json:"format" binding:"required,download_format"`
	Category string                `json:"category" binding:"max=100"`
	FromDate string                `json:"from_date" binding:"omitempty,iso_date"`
	ToDate   string                `json:"to_date" binding:"omitempty,iso_date"`
}

// DownloadSummary is a history entry without its file content
type DownloadSummary struct {
	ID               string                `json:"id"`
	Filename         string                `json:"filename"`
	Format           models.DownloadFormat `json:"format"`
	FileSize         int64                 `json:"fileSize"`
	MimeType         string                `json:"mimeType"`
	DownloadDate     time.Time             `json:"downloadDate"`
	TransactionCount int                   `json:"transactionCount"`
	Period           string                `json:"period,omitempty"`
}

func toDownloadSummary(rec models.DownloadRecord) DownloadSummary {
	return DownloadSummary{
		ID:               rec.ID,
		Filename:         rec.Filename,
		Format:           rec.Format,
		FileSize:         rec.FileSize,
		MimeType:         rec.MimeType,
		DownloadDate:     rec.DownloadDate,
		TransactionCount: rec.TransactionCount,
		Period:           rec.Period,
	}
}

// CreateDownload exports transactions and records the download
// @Summary     Export transactions
// @Description Render the filtered transactions as CSV, JSON or XLSX and add the file to the download history
// @Tags        downloads
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDownloadRequest true "Export options"
// @Success     201 {object} DownloadSummary "Download recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /downloads [post]
func (h *DownloadHandler) CreateDownload(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{Category: req.Category}
	if req.FromDate != "" {
		t, err := models.ParseDateBound(req.FromDate, false)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date"))
			return
		}
		filter.FromDate = &t
	}
	if req.ToDate != "" {
		t, err := models.ParseDateBound(req.ToDate, true)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date"))
			return
		}
		filter.ToDate = &t
	}

	rec, err := h.exportService.Export(phone, req.Format, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "EXPORT", "download", rec.ID, c.ClientIP(),
		map[string]interface{}{"format": rec.Format, "transactions": rec.TransactionCount})

	c.JSON(http.StatusCreated, gin.H{"download": toDownloadSummary(*rec)})
}

// GetDownloads lists the download history, newest first
// @Summary     List downloads
// @Tags        downloads
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  DownloadSummary "Download history"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /downloads [get]
func (h *DownloadHandler) GetDownloads(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.exportService.ListDownloads(phone)
	if err != nil {
		respondWithError(c, err)
		return
	}

	downloads := make([]DownloadSummary, 0, len(records))
	for _, rec := range records {
		downloads = append(downloads, toDownloadSummary(rec))
	}
	c.JSON(http.StatusOK, gin.H{"downloads": downloads})
}

// GetDownload returns one history entry
// @Summary     Get a download
// @Tags        downloads
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Download ID"
// @Success     200 {object} DownloadSummary "Download"
// @Failure     404 {object} ErrorResponse "Download not found"
// @Router      /downloads/{id} [get]
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.exportService.GetDownload(phone, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"download": toDownloadSummary(*rec)})
}

// GetDownloadFile serves the stored file of a download
// @Summary     Download a file
// @Tags        downloads
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Download ID"
// @Success     200 {file} file "Exported file"
// @Failure     404 {object} ErrorResponse "Download not found"
// @Router      /downloads/{id}/file [get]
func (h *DownloadHandler) GetDownloadFile(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.exportService.GetDownload(phone, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := export.Payload(*rec)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mimeType := rec.MimeType
	if mimeType == "" {
		mimeType = export.MimeType(rec.Format)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	c.Data(http.StatusOK, mimeType, payload)
}

// DeleteDownload removes one history entry
// @Summary     Delete a download
// @Tags        downloads
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Download ID"
// @Success     200 {object} MessageResponse "Download deleted"
// @Failure     404 {object} ErrorResponse "Download not found"
// @Router      /downloads/{id} [delete]
func (h *DownloadHandler) DeleteDownload(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.exportService.DeleteDownload(phone, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "DELETE_DOWNLOAD", "download", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Download deleted successfully"})
}

// ClearDownloads empties the download history
// @Summary     Clear downloads
// @Tags        downloads
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "History cleared"
// @Router      /downloads [delete]
func (h *DownloadHandler) ClearDownloads(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.exportService.ClearDownloads(phone); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "CLEAR_DOWNLOADS", "download", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Download history cleared"})
}
