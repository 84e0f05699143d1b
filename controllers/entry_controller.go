package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Shwetank-F/daily-diet-scan/services"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	Ledger *services.LedgerService
}

func NewEntryController(ledger *services.LedgerService) *EntryController {
	return &EntryController{Ledger: ledger}
}

type recordEntryRequest struct {
	Date     string                   `json:"date"` // YYYY-MM-DD, defaults to today
	Name     string                   `json:"name" binding:"required"`
	Brand    string                   `json:"brand"`
	Quantity float64                  `json:"quantity" binding:"required"`
	Record   services.NutritionRecord `json:"record"`
}

// POST /entries
func (ec *EntryController) Record(c *gin.Context) {
	var req recordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDateOrToday(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	userID := c.GetUint("userID")
	entry, err := ec.Ledger.RecordEntry(userID, date, req.Name, req.Brand, req.Quantity, req.Record)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		var terr *services.TotalsUpdateError
		if errors.As(err, &terr) {
			// the entry row is durable; the client must retry only
			// the totals arithmetic, not the whole insert
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    terr.Error(),
				"entry_id": terr.EntryID,
				"retry":    fmt.Sprintf("/entries/%d/retry-totals", terr.EntryID),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DELETE /entries/:id
func (ec *EntryController) Delete(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	userID := c.GetUint("userID")
	if err := ec.Ledger.DeleteEntry(userID, uint(entryID)); err != nil {
		var terr *services.TotalsUpdateError
		if errors.As(err, &terr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": terr.Error(), "entry_id": terr.EntryID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /entries/:id/retry-totals
func (ec *EntryController) RetryTotals(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	userID := c.GetUint("userID")
	if err := ec.Ledger.RetryTotalsUpdate(userID, uint(entryID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /day?date=YYYY-MM-DD
func (ec *EntryController) GetDay(c *gin.Context) {
	date, err := parseDateOrToday(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	userID := c.GetUint("userID")
	total, entries, err := ec.Ledger.LoadDay(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    total.Date.Format("2006-01-02"),
		"totals":  total,
		"entries": entries,
	})
}

// GET /day/history
func (ec *EntryController) History(c *gin.Context) {
	userID := c.GetUint("userID")
	totals, err := ec.Ledger.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, totals)
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
