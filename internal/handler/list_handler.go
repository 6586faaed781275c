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

type ListHandler struct {
	listRepo   repository.ListRepositoryInterface
	guard      *OwnershipGuard
	boardCache *cache.BoardCache
}

func NewListHandler(listRepo repository.ListRepositoryInterface, guard *OwnershipGuard, boardCache *cache.BoardCache) *ListHandler {
	return &ListHandler{
		listRepo:   listRepo,
		guard:      guard,
		boardCache: boardCache,
	}
}

type CreateListRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Position *int   `json:"position"`
}

type UpdateListRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Position *int    `json:"position"`
}

type ListResponse struct {
	ID        string         `json:"id"`
	BoardID   string         `json:"board_id"`
	Name      string         `json:"name"`
	Position  int            `json:"position"`
	CreatedAt string         `json:"created_at"`
	Cards     []CardResponse `json:"cards"`
}

func listToResponse(list *model.List) ListResponse {
	return ListResponse{
		ID:        list.ID.String(),
		BoardID:   list.BoardID.String(),
		Name:      list.Name,
		Position:  list.Position,
		CreatedAt: list.CreatedAt.Format(time.RFC3339),
		Cards:     []CardResponse{},
	}
}

// Create adds a list to the board. A caller-supplied position is stored as
// given; when omitted the list is appended after the current last one.
func (h *ListHandler) Create(c *gin.Context) {
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

	boardIDStr := c.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.guard.Board(c.Request.Context(), boardID, authenticatedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var position int
	if req.Position != nil {
		position = *req.Position
	} else {
		maxPosition, err := h.listRepo.GetMaxPosition(c.Request.Context(), boardID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine list position"})
			return
		}
		position = maxPosition + 1
	}

	list := &model.List{
		BoardID:  boardID,
		Name:     req.Name,
		Position: position,
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), boardID.String())

	c.JSON(http.StatusCreated, listToResponse(list))
}

func (h *ListHandler) Update(c *gin.Context) {
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

	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "List name must not be empty"})
			return
		}
		list.Name = *req.Name
	}
	// Position is written as supplied; siblings are never renumbered here.
	if req.Position != nil {
		list.Position = *req.Position
	}

	if err := h.listRepo.Update(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update list"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), list.BoardID.String())

	c.JSON(http.StatusOK, listToResponse(list))
}

func (h *ListHandler) Delete(c *gin.Context) {
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

	if err := h.listRepo.Delete(c.Request.Context(), listID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list"})
		return
	}

	h.boardCache.Invalidate(c.Request.Context(), list.BoardID.String())

	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
