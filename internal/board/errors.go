package board

import (
	"errors"
	"fmt"

	"github.com/jusunglee/mta-board/internal/models"
)

// ErrInputShape matches every InputShapeError via errors.Is
var ErrInputShape = errors.New("missing required board input")

// InputShapeError reports a route or direction key the caller failed to
// supply. It is a caller defect, so the render is aborted.
type InputShapeError struct {
	Source    string // "arrivals" or "alerts"
	Route     string
	Direction models.Direction
}

func (e *InputShapeError) Error() string {
	if e.Direction != "" {
		return fmt.Sprintf("%v: %s for route %s direction %s", ErrInputShape, e.Source, e.Route, e.Direction)
	}
	return fmt.Sprintf("%v: %s for route %s", ErrInputShape, e.Source, e.Route)
}

func (e *InputShapeError) Is(target error) bool {
	return target == ErrInputShape
}
