package dto

type PageOutput struct {
	Index       int
	Title       string
	Description string
	Image       string
}
