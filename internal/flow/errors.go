package flow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFinal         = errors.New("lesson is not on its final screen")
	ErrAlreadyCompleted = errors.New("lesson already completed")
	ErrNotChoice        = errors.New("current screen is not a choice screen")
	ErrNotStarted       = errors.New("lesson has not started")
	ErrUnknownMarker    = errors.New("lesson has no screen for marker")
	ErrUnknownOption    = errors.New("choice screen has no such option")
)

// ConfigError reports a content table the controller cannot drive.
type ConfigError struct {
	Lesson   string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lesson %q: invalid content table: %s", e.Lesson, strings.Join(e.Problems, "; "))
}
