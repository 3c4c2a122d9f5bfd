package sushi

import "errors"

var (
	ErrNoHand        = errors.New("no hand to play from")
	ErrInvalidAction = errors.New("action does not fit current hand")
)
