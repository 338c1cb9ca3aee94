package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/dmitrijs2005/storehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createStore(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.stores.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) listStores(c *gin.Context) {
	list, err := h.stores.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getStore(c *gin.Context) {
	s, err := h.stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) storeDescription(c *gin.Context) {
	d, err := h.stores.Description(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"_id": c.Param("id"), "description": d})
}

func (h *Handler) storeItemCount(c *gin.Context) {
	n, err := h.stores.ItemCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemCount": n})
}

func (h *Handler) updateStore(c *gin.Context) {
	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.stores.UpdateInfo(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) updateStoreDescription(c *gin.Context) {
	var req services.UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.stores.UpdateDescription(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) deleteStore(c *gin.Context) {
	s, err := h.stores.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// respondStore writes the mutated aggregate, or the service error.
func (h *Handler) respondStore(c *gin.Context, s *models.Store, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) addItem(c *gin.Context) {
	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}
	s, err := h.mutator.AddItem(c.Request.Context(), req.StoreID, req.Item)
	h.respondStore(c, s, err)
}

// modifyItem rejects fields the item schema does not know instead of
// merging them blindly.
func (h *Handler) modifyItem(c *gin.Context) {
	var req services.ModifyItemRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}
	s, err := h.mutator.ModifyItem(c.Request.Context(), req.StoreID, req.Item)
	h.respondStore(c, s, err)
}

func (h *Handler) deleteItem(c *gin.Context) {
	var req services.DeleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}
	s, err := h.mutator.DeleteItem(c.Request.Context(), req.StoreID, req.ItemID)
	h.respondStore(c, s, err)
}

func (h *Handler) addReview(c *gin.Context) {
	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}
	s, err := h.mutator.AddReview(c.Request.Context(), req.StoreID, models.Review{
		UserID:   req.UserID,
		UserName: req.UserName,
		Rating:   req.Rating,
		Review:   req.Review,
	})
	h.respondStore(c, s, err)
}
