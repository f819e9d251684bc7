package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/models"
	"github.com/mmdatafocus/dashboard_backend/utils"
	"go.opentelemetry.io/otel/attribute"
)

// uploadHandler accepts exactly one spreadsheet and runs the ingestion
// pipeline over it. A missing file is its own client error, distinct from a
// workbook in which no row validated.
func uploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := utils.GetUserIdFromContext(c.Request.Context())

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		defer file.Close()

		ctx, span := startSpan(c.Request.Context(), "import-daily-records")
		span.SetAttributes(attribute.String("file_name", fileHeader.Filename))
		defer span.End()

		result, err := models.ImportDailyRecordsFromXlsx(ctx, fileHeader.Filename, file, userId)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrNoValidRows):
				c.JSON(http.StatusBadRequest, gin.H{
					"message": "No valid rows found",
					"errors":  result.Errors,
				})
			case errors.Is(err, models.ErrMalformedUpload):
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read spreadsheet"})
			default:
				config.LogError(config.GetLogger(), "uploadHandlers.go", "uploadHandler", "ImportDailyRecordsFromXlsx", fileHeader.Filename, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			}
			return
		}

		if result.Status == models.UploadStatusPartial {
			c.JSON(http.StatusMultiStatus, gin.H{
				"message":   "Upload finished with some skipped rows",
				"processed": result.Processed,
				"errors":    result.Errors,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Upload successful",
			"processed": result.Processed,
		})
	}
}

func listUploadHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		result, err := models.ListUploadHistories(c.Request.Context(), config.GetDB(), page)
		if err != nil {
			config.LogError(config.GetLogger(), "uploadHandlers.go", "listUploadHistoryHandler", "ListUploadHistories", page, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch upload history"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
