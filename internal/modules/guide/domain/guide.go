package domain

import apperrors "hrmon/internal/platform/errors"

type Page struct {
	Title       string
	Description string
	Image       string
}

// Guide is the onboarding carousel. Values are immutable; every transition
// returns a new Guide. Once completed a guide can never be shown again.
type Guide struct {
	pages     []Page
	index     int
	shown     bool
	completed bool
}

func New(pages []Page) (Guide, error) {
	if len(pages) == 0 {
		return Guide{}, apperrors.ErrEmptyGuide
	}
	cp := make([]Page, len(pages))
	copy(cp, pages)
	return Guide{pages: cp}, nil
}

func (g Guide) Activate() Guide {
	if g.completed || len(g.pages) == 0 {
		return g
	}
	g.shown = true
	g.index = 0
	return g
}

// Next advances one page; on the last page it completes the guide.
func (g Guide) Next() Guide {
	if !g.shown {
		return g
	}
	if g.index < len(g.pages)-1 {
		g.index++
		return g
	}
	return g.Complete()
}

func (g Guide) Prev() Guide {
	if !g.shown || g.index == 0 {
		return g
	}
	g.index--
	return g
}

// Skip jumps to the last page; completion still needs a final Next.
func (g Guide) Skip() Guide {
	if !g.shown {
		return g
	}
	g.index = len(g.pages) - 1
	return g
}

func (g Guide) Complete() Guide {
	g.shown = false
	g.completed = true
	return g
}

func (g Guide) Shown() bool     { return g.shown }
func (g Guide) Completed() bool { return g.completed }
func (g Guide) Index() int      { return g.index }
func (g Guide) Len() int        { return len(g.pages) }
func (g Guide) IsFirst() bool   { return g.index == 0 }
func (g Guide) IsLast() bool    { return g.index == len(g.pages)-1 }

func (g Guide) Current() (Page, bool) {
	if !g.shown {
		return Page{}, false
	}
	return g.pages[g.index], true
}
