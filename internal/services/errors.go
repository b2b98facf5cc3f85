package services

import "errors"

var (
	ErrExchangeNotFound      = errors.New("exchange not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrEmptyName             = errors.New("name cannot be empty")
	ErrNotEnoughParticipants = errors.New("at least 2 participants are needed")
	ErrNoValidAssignment     = errors.New("could not find a valid assignment with the current exclusions")
	ErrNotDrawn              = errors.New("the exchange has not been drawn yet")
	ErrTooManyExclusions     = errors.New("at least one participant must stay available")
	ErrInvalidExclusion      = errors.New("a participant cannot exclude themselves")
	ErrInvalidWish           = errors.New("invalid wish")
	ErrInvalidImage          = errors.New("invalid image")
)
