package client

import "errors"

var (
	ErrNotLoggedIn     = errors.New("not logged in, run `login` first")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingCommand  = errors.New("no command given")
	ErrPasswordsDiffer = errors.New("passwords do not match")
)
