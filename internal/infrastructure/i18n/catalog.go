package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// CatalogImpl implements domain.MessageCatalog from a yaml file mapping
// message keys to per-locale texts. Lookups never fail: an unknown key or
// locale falls back to the default locale and finally to the key itself, so
// a missing translation degrades to a readable message key instead of an
// error in the checkout path.
type CatalogImpl struct {
	messages      map[string]map[string]string
	defaultLocale string
}

type catalogFile struct {
	Messages map[string]map[string]string `yaml:"messages"`
}

// LoadCatalog reads a message catalog from a yaml file.
func LoadCatalog(path, defaultLocale string) (domain.MessageCatalog, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read message catalog at %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse message catalog yaml: %w", err)
	}

	return &CatalogImpl{
		messages:      file.Messages,
		defaultLocale: defaultLocale,
	}, nil
}

// NewCatalog builds a catalog from an in-memory map. Used in tests and as a
// fallback when no catalog file is configured.
func NewCatalog(messages map[string]map[string]string, defaultLocale string) domain.MessageCatalog {
	return &CatalogImpl{messages: messages, defaultLocale: defaultLocale}
}

// Message implements domain.MessageCatalog
func (c *CatalogImpl) Message(key, locale string) string {
	locales, ok := c.messages[key]
	if !ok {
		return key
	}
	if text, ok := locales[locale]; ok {
		return text
	}
	if text, ok := locales[c.defaultLocale]; ok {
		return text
	}
	return key
}
