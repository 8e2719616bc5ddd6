package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hrmon/internal/modules/guide/domain"
	guideout "hrmon/internal/modules/guide/port/out"
)

//go:embed pages.yaml
var defaultPages []byte

type pageFile struct {
	Pages []pageRecord `yaml:"pages"`
}

type pageRecord struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// YAMLPageStore reads guide pages from a YAML document. Without a path the
// built-in pages are used.
type YAMLPageStore struct {
	path string
}

func NewYAMLPageStore(path string) guideout.PageStore {
	return &YAMLPageStore{path: path}
}

func (s *YAMLPageStore) Load(_ context.Context) ([]domain.Page, error) {
	payload := defaultPages
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read guide pages: %w", err)
		}
		payload = b
	}
	return decodePages(payload)
}

func decodePages(payload []byte) ([]domain.Page, error) {
	var file pageFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("decode guide pages: %w", err)
	}
	pages := make([]domain.Page, 0, len(file.Pages))
	for i, rec := range file.Pages {
		title := strings.TrimSpace(rec.Title)
		if title == "" {
			return nil, fmt.Errorf("decode guide pages: page %d has no title", i+1)
		}
		pages = append(pages, domain.Page{
			Title:       title,
			Description: strings.TrimSpace(rec.Description),
			Image:       strings.TrimSpace(rec.Image),
		})
	}
	return pages, nil
}
