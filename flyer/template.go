package flyer

import (
	"os"
	"path/filepath"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// TemplateKind identifies one of the two provisioned template documents.
type TemplateKind string

const (
	KindCompactLetter TemplateKind = "compact-letter"
	KindBannerStrip   TemplateKind = "banner-strip"
)

// TemplateSet resolves template kinds to their backing files. Templates are
// provisioned once before the service starts and are read-only for the
// lifetime of the process.
type TemplateSet struct {
	dir   string
	files map[TemplateKind]string
}

// NewTemplateSet builds the template registry from configuration.
func NewTemplateSet(cfg config.TemplatesConfig) *TemplateSet {
	return &TemplateSet{
		dir: cfg.Dir,
		files: map[TemplateKind]string{
			KindCompactLetter: cfg.CompactLetter,
			KindBannerStrip:   cfg.BannerStrip,
		},
	}
}

// Path returns the backing file for the given kind, or ErrTemplateNotFound
// if the kind is unknown or the file does not exist.
func (t *TemplateSet) Path(kind TemplateKind) (string, error) {
	filename, ok := t.files[kind]
	if !ok || filename == "" {
		return "", errors.Wrapf(ErrTemplateNotFound, "unknown template kind %q", kind)
	}

	path := filepath.Join(t.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrapf(ErrTemplateNotFound, "template %q has no backing file at %s", kind, path)
	}
	return path, nil
}
