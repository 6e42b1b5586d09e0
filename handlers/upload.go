package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"communityconnect/models"
	"communityconnect/storage"

	"github.com/gin-gonic/gin"
)

const maxUploadFiles = 10

// Per-kind size caps matching the gateway's normalization tiers.
const (
	maxImageBytes    = 10 << 20
	maxVideoBytes    = 100 << 20
	maxDocumentBytes = 50 << 20
)

func maxBytesForKind(kind string) int64 {
	switch kind {
	case models.MediaVideo:
		return maxVideoBytes
	case models.MediaDocument:
		return maxDocumentBytes
	default:
		return maxImageBytes
	}
}

// UploadMedia accepts up to ten multipart files, streams each to the media
// gateway and returns the resulting descriptors. The caller attaches them
// to a post in a separate request.
func UploadMedia(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	files := c.Request.MultipartForm.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d files per upload", maxUploadFiles)})
		return
	}

	// Validate every file before uploading any, so a rejected file cannot
	// leave a half-uploaded batch behind.
	for _, header := range files {
		mimeType := header.Header.Get("Content-Type")
		kind, ok := storage.KindForMIME(mimeType)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File type %s not allowed", mimeType)})
			return
		}
		if header.Size > maxBytesForKind(kind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File %s is too large", header.Filename)})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uploaded := make([]models.Media, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		media, err := mediaGateway.UploadPostMedia(ctx, file, header.Header.Get("Content-Type"), header.Filename, header.Size)
		file.Close()
		if err != nil {
			log.Printf("UploadMedia gateway error: %v", err)
			if isUploadFailure(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload media"})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		uploaded = append(uploaded, media)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Files uploaded successfully",
		"files":   uploaded,
	})
}
