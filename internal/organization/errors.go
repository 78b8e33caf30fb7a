package organization

import (
	"errors"
	"fmt"

	"github.com/org-hierarchy/internal/domain"
)

// HireError описывает причину отказа в найме
type HireError struct {
	Title string
	Err   error
}

func (e *HireError) Error() string {
	switch {
	case errors.Is(e.Err, domain.ErrPositionNotFound):
		return fmt.Sprintf("There is no position with the title \"%s\"", e.Title)
	case errors.Is(e.Err, domain.ErrPositionFilled):
		return fmt.Sprintf("Thank you for you interest at American Airlines. It seems this position with the title \"%s\" Is already filled.", e.Title)
	default:
		return fmt.Sprintf("cannot hire for %q: %v", e.Title, e.Err)
	}
}

func (e *HireError) Unwrap() error {
	return e.Err
}
