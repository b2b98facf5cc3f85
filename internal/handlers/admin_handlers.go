package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/samber/lo"

	"giftexchange/internal/models"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type exclusionRequest struct {
	GiverID    string `json:"giverId" binding:"required"`
	ReceiverID string `json:"receiverId" binding:"required"`
}

// ListExchanges returns every exchange.
func (h *HTTPHandler) ListExchanges(c *gin.Context) {
	summaries, err := h.service.ListExchanges()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": summaries})
}

// CreateExchange handles the form submission for a new exchange.
func (h *HTTPHandler) CreateExchange(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	ex, err := h.service.CreateExchange(req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// ClearAll deletes every exchange.
func (h *HTTPHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ShowExchange returns the full exchange, results and reveal records included.
func (h *HTTPHandler) ShowExchange(c *gin.Context) {
	ex, err := h.service.GetExchange(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// DeleteExchange deletes one exchange.
func (h *HTTPHandler) DeleteExchange(c *gin.Context) {
	if err := h.service.DeleteExchange(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddParticipant handles the form submission for adding a new participant.
func (h *HTTPHandler) AddParticipant(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	p, err := h.service.AddParticipant(c.Param("id"), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UploadParticipantsCSV adds one participant per CSV row, taking the name from
// the first column. Blank rows are skipped.
func (h *HTTPHandler) UploadParticipantsCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("participantCSV")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participantCSV file is required"})
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	var names []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "error reading CSV: " + err.Error()})
			return
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			logger.Infof("Skipping blank participant CSV record: %v", record)
			continue
		}
		names = append(names, strings.TrimPrefix(record[0], "\xef\xbb\xbf"))
	}
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the CSV file has no participants"})
		return
	}

	added, err := h.service.AddParticipants(c.Param("id"), names)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participants": added})
}

// RemoveParticipant deletes a participant and everything referencing it.
func (h *HTTPHandler) RemoveParticipant(c *gin.Context) {
	if err := h.service.RemoveParticipant(c.Param("id"), c.Param("participantID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleExclusion flips one giver -> receiver exclusion.
func (h *HTTPHandler) ToggleExclusion(c *gin.Context) {
	var req exclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "giverId and receiverId are required"})
		return
	}
	excluded, err := h.service.ToggleExclusion(c.Param("id"), req.GiverID, req.ReceiverID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"giverId": req.GiverID, "receiverId": req.ReceiverID, "excluded": excluded})
}

// PerformDraw runs the draw and stores the results.
func (h *HTTPHandler) PerformDraw(c *gin.Context) {
	exchangeID := c.Param("id")
	if _, err := h.service.Draw(exchangeID); err != nil {
		h.respondError(c, err)
		return
	}
	h.showResults(c, exchangeID)
}

// ShowResults returns the drawn pairs with their reveal state.
func (h *HTTPHandler) ShowResults(c *gin.Context) {
	h.showResults(c, c.Param("id"))
}

type resultRow struct {
	models.Pair
	Opened bool `json:"opened"`
}

func (h *HTTPHandler) showResults(c *gin.Context, exchangeID string) {
	ex, err := h.service.GetExchange(exchangeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	pairs, err := h.service.Pairs(exchangeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	rows := lo.Map(pairs, func(p models.Pair, _ int) resultRow {
		record := ex.Reveals[p.Giver.ID]
		return resultRow{Pair: p, Opened: record != nil && record.Opened}
	})
	c.JSON(http.StatusOK, gin.H{"drawnAt": ex.DrawnAt, "pairs": rows})
}

// ClearResults removes the results of an exchange.
func (h *HTTPHandler) ClearResults(c *gin.Context) {
	if err := h.service.ClearResults(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportResultsCSV handles the request to download the results as a CSV file.
func (h *HTTPHandler) ExportResultsCSV(c *gin.Context) {
	ex, err := h.service.GetExchange(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	pairs, err := h.service.Pairs(ex.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=exchange_results.csv")

	// Add BOM to ensure UTF-8 compatibility in Excel
	c.Writer.Write([]byte("\xef\xbb\xbf"))

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"Giver", "Receiver", "Opened"}); err != nil {
		logger.Infof("Error writing CSV header: %v", err)
		return
	}
	for _, p := range pairs {
		record := ex.Reveals[p.Giver.ID]
		row := []string{p.Giver.Name, p.Receiver.Name, strconv.FormatBool(record != nil && record.Opened)}
		if err := w.Write(row); err != nil {
			logger.Infof("Error writing CSV row: %v", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Infof("Error flushing CSV writer: %v", err)
	}
}

// ParticipantLinks are the links handed to one participant.
type ParticipantLinks struct {
	Participant *models.Participant `json:"participant"`
	Reveal      string              `json:"reveal"`
	WishList    string              `json:"wishList"`
}

// ShowLinks returns the shareable links of an exchange.
func (h *HTTPHandler) ShowLinks(c *gin.Context) {
	ex, err := h.service.GetExchange(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	base := h.baseURL + "/exchanges/" + ex.ID
	links := lo.Map(ex.Participants, func(p *models.Participant, _ int) ParticipantLinks {
		return ParticipantLinks{
			Participant: p,
			Reveal:      base + "/reveal/" + p.ID,
			WishList:    base + "/wishes/" + p.ID,
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"exchange":     base + "/public",
		"publicWishes": base + "/wishes",
		"participants": links,
	})
}
