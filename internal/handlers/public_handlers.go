package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftexchange/internal/models"
)

var errBodyTooLarge = errors.New("request body too large")

type publicExchange struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Participants []*models.Participant `json:"participants"`
	Drawn        bool                  `json:"drawn"`
}

// ShowPublicExchange returns what a participant needs to pick themselves from
// the list. Results are not included.
func (h *HTTPHandler) ShowPublicExchange(c *gin.Context) {
	ex, err := h.service.GetExchange(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, publicExchange{
		ID:           ex.ID,
		Name:         ex.Name,
		Participants: ex.Participants,
		Drawn:        ex.Drawn(),
	})
}

// Reveal shows a giver their receiver and records that they opened it.
func (h *HTTPHandler) Reveal(c *gin.Context) {
	reveal, err := h.service.Reveal(c.Param("id"), c.Param("participantID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reveal)
}

// ListWishLists returns every published wish list of the exchange.
func (h *HTTPHandler) ListWishLists(c *gin.Context) {
	lists, err := h.service.ListWishLists(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishLists": lists})
}

// GetWishList returns one participant's wish list.
func (h *HTTPHandler) GetWishList(c *gin.Context) {
	list, err := h.service.GetWishList(c.Param("id"), c.Param("participantID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type wishListRequest struct {
	Items []*models.Wish `json:"items"`
}

// SaveWishList replaces one participant's wish list.
func (h *HTTPHandler) SaveWishList(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req wishListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errBodyTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wish list"})
		return
	}

	list, err := h.service.SaveWishList(c.Param("id"), c.Param("participantID"), req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
