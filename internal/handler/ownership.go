package handler

import (
	"context"

	"mustrello/internal/model"
	"mustrello/internal/repository"

	"github.com/google/uuid"
)

// OwnershipGuard resolves an entity's parent chain up to its board and
// checks that the board belongs to the requesting user. Every resolver
// returns nil entities when any link in the chain is missing OR when the
// board belongs to someone else; callers render both as 404. Collapsing
// "does not exist" and "not yours" into one answer keeps foreign board ids
// unprobeable.
type OwnershipGuard struct {
	boardRepo   repository.BoardRepositoryInterface
	listRepo    repository.ListRepositoryInterface
	cardRepo    repository.CardRepositoryInterface
	commentRepo repository.CommentRepositoryInterface
}

func NewOwnershipGuard(
	boardRepo repository.BoardRepositoryInterface,
	listRepo repository.ListRepositoryInterface,
	cardRepo repository.CardRepositoryInterface,
	commentRepo repository.CommentRepositoryInterface,
) *OwnershipGuard {
	return &OwnershipGuard{
		boardRepo:   boardRepo,
		listRepo:    listRepo,
		cardRepo:    cardRepo,
		commentRepo: commentRepo,
	}
}

func (g *OwnershipGuard) Board(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	board, err := g.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.OwnerID != userID {
		return nil, nil
	}
	return board, nil
}

func (g *OwnershipGuard) List(ctx context.Context, listID, userID uuid.UUID) (*model.List, error) {
	list, err := g.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	board, err := g.Board(ctx, list.BoardID, userID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, nil
	}
	return list, nil
}

// Card returns the card together with its list, since callers usually need
// the list's board id afterwards (cache invalidation, move checks).
func (g *OwnershipGuard) Card(ctx context.Context, cardID, userID uuid.UUID) (*model.Card, *model.List, error) {
	card, err := g.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	if card == nil {
		return nil, nil, nil
	}

	list, err := g.List(ctx, card.ListID, userID)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, nil
	}
	return card, list, nil
}

func (g *OwnershipGuard) Comment(ctx context.Context, commentID, userID uuid.UUID) (*model.Comment, *model.List, error) {
	comment, err := g.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}
	if comment == nil {
		return nil, nil, nil
	}

	_, list, err := g.Card(ctx, comment.CardID, userID)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, nil
	}
	return comment, list, nil
}
