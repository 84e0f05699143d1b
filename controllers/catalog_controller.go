package controllers

import (
	"net/http"

	"github.com/Shwetank-F/daily-diet-scan/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GET /catalog?q=oat
func (cc *CatalogController) Search(c *gin.Context) {
	userID := c.GetUint("userID")
	items, err := cc.Catalog.Search(userID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
