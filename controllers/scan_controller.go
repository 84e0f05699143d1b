package controllers

import (
	"errors"
	"net/http"

	"github.com/Shwetank-F/daily-diet-scan/services"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	Scan *services.ScanService
}

func NewScanController(scan *services.ScanService) *ScanController {
	return &ScanController{Scan: scan}
}

// POST /scan  { "image_base64": "data:image/jpeg;base64,..." }
func (sc *ScanController) ScanLabel(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	result, err := sc.Scan.ScanLabel(c.Request.Context(), req.ImageBase64)
	if err != nil {
		var xerr *services.ExtractionError
		if errors.As(err, &xerr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": xerr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// detected=false is a valid result: the client falls back to manual
	// entry pre-filled with zeros
	c.JSON(http.StatusOK, result)
}
