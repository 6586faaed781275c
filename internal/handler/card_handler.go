package handler

import (
	"net/http"
	"time"

	"mustrello/internal/cache"
	"mustrello/internal/middleware"
	"mustrello/internal/model"
	"mustrello/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardRepo   repository.CardRepositoryInterface
	guard      *OwnershipGuard
	boardCache *cache.BoardCache
}

func NewCardHandler(cardRepo repository.CardRepositoryInterface, guard *OwnershipGuard, boardCache *cache.BoardCache) *CardHandler {
	return &CardHandler{
		cardRepo:   cardRepo,
		guard:      guard,
		boardCache: boardCache,
	}
}

type CreateCardRequest struct {
	Title       string `json:"title" binding:"required,max=500"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,max=20"`
	Position    *int   `json:"position"`
}

type UpdateCardRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=500"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	Position    *int    `json:"position"`
}

type MoveCardRequest struct {
	TargetListID string `json:"target_list_id" binding:"required,uuid"`
	NewPosition  *int   `json:"new_position" binding:"required"`
}

type CardResponse struct {
	ID          string            `json:"id"`
	ListID      string            `json:"list_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Position    int               `json:"position"`
	Color       string            `json:"color"`
	CreatedAt   string            `json:"created_at"`
	Comments    []CommentResponse `json:"comments"`
}

func cardToResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:          card.ID.String(),
		ListID:      card.ListID.String(),
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		Color:       card.Color,
		CreatedAt:   card.CreatedAt.Format(time.RFC3339),
		Comments:    []CommentResponse{},
	}
}

// Create adds a card to the list. A caller-supplied position is stored as
// given; when omitted the card is appended after the current siblings.
func (h *CardHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	listIDStr := c.Param("id")
	listID, err := uuid.Parse(listIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	list, err := h.guard.List(c.Request.Context(), listID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var position int
	if req.Position != nil {
		position = *req.Position
	} else {
		cards, err := h.cardRepo.GetByListID(c.Request.Context(), listID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
			return
		}
		position = len(cards)
	}

	card := &model.Card{
		ListID:      listID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Position:    position,
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), list.BoardID.String())

	c.JSON(http.StatusCreated, cardToResponse(card))
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	cardIDStr := c.Param("id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, list, err := h.guard.Card(c.Request.Context(), cardID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Absent fields stay untouched; description and color may be cleared
	// explicitly, the title may not.
	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card title must not be empty"})
			return
		}
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Color != nil {
		card.Color = *req.Color
	}
	if req.Position != nil {
		card.Position = *req.Position
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), list.BoardID.String())

	c.JSON(http.StatusOK, cardToResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	cardIDStr := c.Param("id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, list, err := h.guard.Card(c.Request.Context(), cardID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), cardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), list.BoardID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

// Move reparents the card into the target list at the requested position.
// Both the card and the target list must resolve to a board owned by the
// requester. The position is stored verbatim; existing cards in the target
// list keep theirs, so duplicates are possible and reads settle the order
// by (position, created_at).
func (h *CardHandler) Move(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	cardIDStr := c.Param("id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, sourceList, err := h.guard.Card(c.Request.Context(), cardID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	targetListID, err := uuid.Parse(req.TargetListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	targetList, err := h.guard.List(c.Request.Context(), targetListID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}
	if targetList == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target list not found"})
		return
	}

	if err := h.cardRepo.Move(c.Request.Context(), cardID, targetListID, *req.NewPosition); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move card"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), sourceList.BoardID.String())
	h.boardCache.Invalidate(c.Request.Context(), targetList.BoardID.String())

	card.ListID = targetListID
	card.Position = *req.NewPosition

	c.JSON(http.StatusOK, cardToResponse(card))
}
