package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"product-details/internal/domain"
	"product-details/internal/selection"
)

const detailsPath = "/details"

type detailsHandler struct {
	catalog catalogService
	logger  *zap.Logger
}

// landing is the parent page: it lists the catalog and posts a selection.
func (h *detailsHandler) landing(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	cards := make([]selection.Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, selection.NewCard(p))
	}
	c.HTML(http.StatusOK, "landing.html", gin.H{"Products": cards})
}

func (h *detailsHandler) selectProducts(c *gin.Context) {
	if err := h.replaceSelection(c, c.PostFormArray("ids")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, detailsPath)
}

func (h *detailsHandler) show(c *gin.Context) {
	page := renderPage(c)
	c.HTML(http.StatusOK, "details.html", page)
}

func (h *detailsHandler) remove(c *gin.Context) {
	id := c.Param("id")
	target, _ := currentSession(c).Do(func(_ *selection.SourceList, view *selection.View) {
		view.RemoveProduct(id)
	})
	redirect(c, target)
}

func (h *detailsHandler) clearAll(c *gin.Context) {
	target, _ := currentSession(c).Do(func(_ *selection.SourceList, view *selection.View) {
		view.ClearAll()
	})
	redirect(c, target)
}

func (h *detailsHandler) addToCart(c *gin.Context) {
	h.shelve(c, (*selection.View).AddToCart)
}

func (h *detailsHandler) addToWishlist(c *gin.Context) {
	h.shelve(c, (*selection.View).AddToWishlist)
}

type shelveFunc func(v *selection.View, ctx context.Context, p domain.Product)

func (h *detailsHandler) shelve(c *gin.Context, action shelveFunc) {
	target, err := runShelve(c, action)
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, target)
}

// runShelve applies a guarded cart or wishlist action to a selected product.
func runShelve(c *gin.Context, action shelveFunc) (string, error) {
	id := c.Param("id")
	found := false
	target, _ := currentSession(c).Do(func(_ *selection.SourceList, view *selection.View) {
		p, ok := view.Find(id)
		if !ok {
			return
		}
		found = true
		action(view, c.Request.Context(), p)
	})
	if !found {
		return "", domain.ErrNotFound
	}
	return target, nil
}

func (h *detailsHandler) replaceSelection(c *gin.Context, ids []string) error {
	products, err := h.catalog.Resolve(c.Request.Context(), ids)
	if err != nil {
		return err
	}
	currentSession(c).Do(func(source *selection.SourceList, _ *selection.View) {
		source.Set(products)
	})
	return nil
}

func renderPage(c *gin.Context) selection.Page {
	sess, ok := lookupSession(c)
	if !ok {
		return selection.EmptyPage()
	}
	var page selection.Page
	sess.Do(func(_ *selection.SourceList, view *selection.View) {
		page = view.Render()
	})
	return page
}

func redirect(c *gin.Context, target string) {
	if target == "" {
		target = detailsPath
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *detailsHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("details handler failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
