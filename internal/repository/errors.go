package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a delete or update touches no board row
	ErrBoardNotFound = errors.New("board not found")

	// ErrListNotFound is returned when a delete or update touches no list row
	ErrListNotFound = errors.New("list not found")

	// ErrCardNotFound is returned when a delete, update or move touches no card row
	ErrCardNotFound = errors.New("card not found")

	// ErrCommentNotFound is returned when a delete or update touches no comment row
	ErrCommentNotFound = errors.New("comment not found")
)
