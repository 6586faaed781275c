package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mustrello/internal/handler"
	"mustrello/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type cardTestEnv struct {
	router *gin.Engine
	boards *MockBoardRepository
	lists  *MockListRepository
	cards  *MockCardRepository
}

func setupCardTest(userID uuid.UUID) *cardTestEnv {
	r := setupAuthedRouter(userID)
	env := &cardTestEnv{
		router: r,
		boards: new(MockBoardRepository),
		lists:  new(MockListRepository),
		cards:  new(MockCardRepository),
	}
	guard := handler.NewOwnershipGuard(env.boards, env.lists, env.cards, new(MockCommentRepository))
	cardHandler := handler.NewCardHandler(env.cards, guard, nil)

	r.POST("/api/lists/:id/cards", cardHandler.Create)
	r.PUT("/api/cards/:id", cardHandler.Update)
	r.DELETE("/api/cards/:id", cardHandler.Delete)
	r.POST("/api/cards/:id/move", cardHandler.Move)
	return env
}

// ownChain wires the mocks so listID resolves to a board owned by userID.
func (env *cardTestEnv) ownChain(listID uuid.UUID, userID uuid.UUID) *model.List {
	boardID := uuid.New()
	list := &model.List{ID: listID, BoardID: boardID, Name: "Todo"}
	env.lists.On("GetByID", mock.Anything, listID).Return(list, nil)
	env.boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	return list
}

func TestCardCreate_AppendsAfterSiblings(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)
	listID := uuid.New()
	env.ownChain(listID, userID)

	existing := []model.Card{
		{ID: uuid.New(), ListID: listID, Position: 0},
		{ID: uuid.New(), ListID: listID, Position: 1},
	}
	env.cards.On("GetByListID", mock.Anything, listID).Return(existing, nil)
	env.cards.On("Create", mock.Anything, mock.AnythingOfType("*model.Card")).
		Run(func(args mock.Arguments) {
			card := args.Get(1).(*model.Card)
			card.ID = uuid.New()
		}).
		Return(nil)

	req, _ := http.NewRequest("POST", "/api/lists/"+listID.String()+"/cards",
		bytes.NewBufferString(`{"title":"Draft copy"}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.CardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Draft copy", response.Title)
	assert.Equal(t, 2, response.Position)

	env.cards.AssertExpectations(t)
}

func TestCardCreate_ExplicitPositionStoredAsGiven(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)
	listID := uuid.New()
	env.ownChain(listID, userID)

	var created *model.Card
	env.cards.On("Create", mock.Anything, mock.AnythingOfType("*model.Card")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Card)
			created.ID = uuid.New()
		}).
		Return(nil)

	// A sparse position is stored untouched, no sibling lookup happens.
	req, _ := http.NewRequest("POST", "/api/lists/"+listID.String()+"/cards",
		bytes.NewBufferString(`{"title":"Draft copy","position":40}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 40, created.Position)
	env.cards.AssertNotCalled(t, "GetByListID", mock.Anything, mock.Anything)
}

func TestCardUpdate_TitleOnlyKeepsDescription(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)
	listID := uuid.New()
	env.ownChain(listID, userID)

	card := &model.Card{ID: uuid.New(), ListID: listID, Title: "Draft copy", Description: "first pass", Position: 1}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	env.cards.On("Update", mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil)

	req, _ := http.NewRequest("PUT", "/api/cards/"+card.ID.String(),
		bytes.NewBufferString(`{"title":"Final copy"}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.CardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Final copy", response.Title)
	assert.Equal(t, "first pass", response.Description)
	assert.Equal(t, 1, response.Position)
}

func TestCardUpdate_ExplicitEmptyClearsDescription(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)
	listID := uuid.New()
	env.ownChain(listID, userID)

	card := &model.Card{ID: uuid.New(), ListID: listID, Title: "Draft copy", Description: "first pass"}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	env.cards.On("Update", mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil)

	req, _ := http.NewRequest("PUT", "/api/cards/"+card.ID.String(),
		bytes.NewBufferString(`{"description":""}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.CardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Draft copy", response.Title)
	assert.Equal(t, "", response.Description)
}

func TestCardUpdate_NotOwner(t *testing.T) {
	// Arrange
	stranger := uuid.New()
	env := setupCardTest(stranger)

	listID := uuid.New()
	boardID := uuid.New()
	card := &model.Card{ID: uuid.New(), ListID: listID, Title: "Draft copy"}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	env.lists.On("GetByID", mock.Anything, listID).Return(&model.List{ID: listID, BoardID: boardID}, nil)
	env.boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, OwnerID: uuid.New()}, nil)

	req, _ := http.NewRequest("PUT", "/api/cards/"+card.ID.String(),
		bytes.NewBufferString(`{"title":"Hijacked"}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Card not found")
	env.cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCardMove_PositionZeroStoredVerbatim(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)

	sourceListID := uuid.New()
	env.ownChain(sourceListID, userID)
	targetListID := uuid.New()
	env.ownChain(targetListID, userID)

	card := &model.Card{ID: uuid.New(), ListID: sourceListID, Title: "Draft copy", Position: 3}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	env.cards.On("Move", mock.Anything, card.ID, targetListID, 0).Return(nil)

	body, _ := json.Marshal(handler.MoveCardRequest{
		TargetListID: targetListID.String(),
		NewPosition:  new(int),
	})
	req, _ := http.NewRequest("POST", "/api/cards/"+card.ID.String()+"/move", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert: position 0 reaches the repository unchanged
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.CardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, targetListID.String(), response.ListID)
	assert.Equal(t, 0, response.Position)

	env.cards.AssertExpectations(t)
}

func TestCardMove_TargetListNotFound(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)

	sourceListID := uuid.New()
	env.ownChain(sourceListID, userID)

	card := &model.Card{ID: uuid.New(), ListID: sourceListID, Title: "Draft copy"}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

	targetListID := uuid.New()
	env.lists.On("GetByID", mock.Anything, targetListID).Return(nil, nil)

	body, _ := json.Marshal(handler.MoveCardRequest{
		TargetListID: targetListID.String(),
		NewPosition:  new(int),
	})
	req, _ := http.NewRequest("POST", "/api/cards/"+card.ID.String()+"/move", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Target list not found")
	env.cards.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCardDelete_Success(t *testing.T) {
	// Arrange
	userID := uuid.New()
	env := setupCardTest(userID)
	listID := uuid.New()
	env.ownChain(listID, userID)

	card := &model.Card{ID: uuid.New(), ListID: listID, Title: "Draft copy"}
	env.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	env.cards.On("Delete", mock.Anything, card.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/cards/"+card.ID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Card deleted successfully")
	env.cards.AssertExpectations(t)
}
