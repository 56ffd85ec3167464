package cli

import (
	"errors"
	"fmt"
)

var errEmptyName = errors.New("name is empty")

type unknownTopicError struct {
	topic string
}

func (e unknownTopicError) Error() string {
	return fmt.Sprintf("unknown docs topic: %q (run `promptboard docs` to list topics)", e.topic)
}
