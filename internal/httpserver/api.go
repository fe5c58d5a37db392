package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-details/internal/selection"
)

type selectionRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type detailsResponse struct {
	Page     selection.Page `json:"page"`
	Navigate string         `json:"navigate,omitempty"`
}

func (h *detailsHandler) apiShow(c *gin.Context) {
	c.JSON(http.StatusOK, detailsResponse{Page: renderPage(c)})
}

func (h *detailsHandler) apiSelect(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.replaceSelection(c, req.IDs); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detailsResponse{Page: renderPage(c)})
}

func (h *detailsHandler) apiRemove(c *gin.Context) {
	id := c.Param("id")
	target, _ := currentSession(c).Do(func(_ *selection.SourceList, view *selection.View) {
		view.RemoveProduct(id)
	})
	c.JSON(http.StatusOK, detailsResponse{Page: renderPage(c), Navigate: target})
}

func (h *detailsHandler) apiClearAll(c *gin.Context) {
	target, _ := currentSession(c).Do(func(_ *selection.SourceList, view *selection.View) {
		view.ClearAll()
	})
	c.JSON(http.StatusOK, detailsResponse{Page: renderPage(c), Navigate: target})
}

func (h *detailsHandler) apiAddToCart(c *gin.Context) {
	h.apiShelve(c, (*selection.View).AddToCart)
}

func (h *detailsHandler) apiAddToWishlist(c *gin.Context) {
	h.apiShelve(c, (*selection.View).AddToWishlist)
}

func (h *detailsHandler) apiShelve(c *gin.Context, action shelveFunc) {
	target, err := runShelve(c, action)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detailsResponse{Page: renderPage(c), Navigate: target})
}
