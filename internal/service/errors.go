package service

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInvalid    = errors.New("invalid")
	ErrPageFetch  = errors.New("page fetch failed")
	ErrNoLyrics   = errors.New("no lyrics found")
	ErrNoProvider = errors.New("llm provider not configured")
)
