package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/middleware"
	"github.com/rentalmarket/core/models"
)

func (srv *Server) ListItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		f := store.ItemFilter{
			Location: c.Query("location"),
			Query:    c.Query("q"),
			OrderBy:  c.Query("order_by"),
		}
		if v := c.Query("category_id"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				f.CategoryID = &id
			}
		}
		if v := c.Query("min_price"); v != "" {
			if p, err := strconv.ParseFloat(v, 64); err == nil {
				f.MinPrice = &p
			}
		}
		if v := c.Query("max_price"); v != "" {
			if p, err := strconv.ParseFloat(v, 64); err == nil {
				f.MaxPrice = &p
			}
		}
		if v := c.Query("owner_id"); v != "" {
			if id, err := uuid.Parse(v); err == nil {
				f.OwnerID = &id
			}
		}
		f.Page, _ = strconv.Atoi(c.Query("page"))
		f.PageSize, _ = strconv.Atoi(c.Query("page_size"))

		items, total, err := srv.Store.ListItems(c.Request.Context(), f)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("listing items", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}

func (srv *Server) GetItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		item, err := srv.Store.GetItem(c.Request.Context(), id)
		if err == store.ErrNotFound {
			middleware.RespondError(c, apperr.ErrItemNotFound)
			return
		}
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading item", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

type createItemRequest struct {
	Title         string               `json:"title" binding:"required"`
	Description   string               `json:"description"`
	CategoryID    *int                 `json:"category_id"`
	PricePerDay   decimal.Decimal      `json:"price_per_day" binding:"required"`
	DepositAmount decimal.Decimal      `json:"deposit_amount"`
	Condition     models.ItemCondition `json:"condition" binding:"required"`
	Location      string               `json:"location"`
}

func (srv *Server) CreateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		var req createItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item := &models.Item{
			OwnerID:       userID,
			CategoryID:    req.CategoryID,
			Title:         req.Title,
			Description:   req.Description,
			PricePerDay:   req.PricePerDay,
			DepositAmount: req.DepositAmount,
			Condition:     req.Condition,
			Location:      req.Location,
			IsActive:      true,
		}
		if err := srv.Store.CreateItem(c.Request.Context(), item); err != nil {
			middleware.RespondError(c, apperr.Internal("creating item", err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}

// UpdateItem applies a sparse field-by-field patch restricted to
// models.UpdatableItemFields, the same discipline as UpdateSelf.
func (srv *Server) UpdateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		var patch map[string]interface{}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for key := range patch {
			if _, ok := models.UpdatableItemFields[key]; !ok {
				middleware.RespondError(c, apperr.ErrUnknownUpdateField)
				return
			}
		}

		item, err := srv.Store.GetItem(c.Request.Context(), id)
		if err == store.ErrNotFound {
			middleware.RespondError(c, apperr.ErrItemNotFound)
			return
		}
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading item", err))
			return
		}
		if item.OwnerID != userID {
			middleware.RespondError(c, apperr.ErrNotAuthorized)
			return
		}

		if err := applyItemPatch(item, patch); err != nil {
			middleware.RespondError(c, err)
			return
		}

		if err := srv.Store.SaveItem(c.Request.Context(), item); err != nil {
			middleware.RespondError(c, apperr.Internal("saving item", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

func applyItemPatch(item *models.Item, patch map[string]interface{}) error {
	for key, value := range patch {
		switch key {
		case "title":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("title must be a string")
			}
			item.Title = s
		case "description":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("description must be a string")
			}
			item.Description = s
		case "category":
			if value == nil {
				item.CategoryID = nil
				continue
			}
			f, ok := value.(float64)
			if !ok {
				return apperr.Validation("category must be a numeric id")
			}
			id := int(f)
			item.CategoryID = &id
		case "condition":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("condition must be a string")
			}
			item.Condition = models.ItemCondition(s)
		case "pricePerDay":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("pricePerDay must be a decimal string")
			}
			d, err := decimal.NewFromString(s)
			if err != nil {
				return apperr.Validation("pricePerDay is not a valid decimal")
			}
			item.PricePerDay = d
		case "depositAmount":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("depositAmount must be a decimal string")
			}
			d, err := decimal.NewFromString(s)
			if err != nil {
				return apperr.Validation("depositAmount is not a valid decimal")
			}
			item.DepositAmount = d
		case "location":
			s, ok := value.(string)
			if !ok {
				return apperr.Validation("location must be a string")
			}
			item.Location = s
		case "isActive":
			b, ok := value.(bool)
			if !ok {
				return apperr.Validation("isActive must be a boolean")
			}
			item.IsActive = b
		}
	}
	return nil
}

func (srv *Server) DeleteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		item, err := srv.Store.GetItem(c.Request.Context(), id)
		if err == store.ErrNotFound {
			middleware.RespondError(c, apperr.ErrItemNotFound)
			return
		}
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading item", err))
			return
		}
		if item.OwnerID != userID {
			middleware.RespondError(c, apperr.ErrNotAuthorized)
			return
		}
		if err := srv.Store.DeleteItem(c.Request.Context(), id); err != nil {
			middleware.RespondError(c, apperr.Internal("deleting item", err))
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

func (srv *Server) GetAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		from, to := parseDateRangeQuery(c)
		ranges, err := srv.Projector.Project(c.Request.Context(), id, from, to)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("projecting availability", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ranges": ranges})
	}
}

func (srv *Server) PreviewPrice() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		start, err := time.Parse("2006-01-02", c.Query("start_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing start_date"})
			return
		}
		end, err := time.Parse("2006-01-02", c.Query("end_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing end_date"})
			return
		}
		quote, err := srv.Bookings.PreviewPrice(c.Request.Context(), id, start, end)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quote": quote})
	}
}

func parseDateRangeQuery(c *gin.Context) (time.Time, time.Time) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t
		}
	}
	return from, to
}
