package out

import (
	"io"

	"hrmon/internal/modules/chart/domain"
)

// Chart is the charting capability a Renderer drives.
type Chart interface {
	Init(container domain.Container) error
	SetOption(option domain.Option) error
	Resize(size domain.Size) error
	Render(w io.Writer) error
}
