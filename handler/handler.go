package handler

import (
	"context"

	"radioboard/board"
	"radioboard/domain"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Board       *board.Board
	Programs    domain.Registry
	Store       Pinger
	FlashSecret string
}
