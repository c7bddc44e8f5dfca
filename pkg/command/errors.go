package command

import "errors"

// ErrInvalidCommand is returned for tokens outside the vocabulary.
var ErrInvalidCommand = errors.New("invalid command")
