package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Layout maps each source to its directory, relative to the data root.
type Layout struct {
	Context   string `yaml:"context"`
	Pyrolysis string `yaml:"pyrolysis"`
	Online    string `yaml:"online"`
	Offline   string `yaml:"offline"`
	Permanent string `yaml:"permanent"`
}

// DefaultLayout returns the directory convention of the acquisition
// software.
func DefaultLayout() Layout {
	return Layout{
		Context:   "Bobine_data/context/context",
		Pyrolysis: "Bobine_data/pignat/pignat",
		Online:    "Bobine_data/chromeleon/online",
		Offline:   "Bobine_data/chromeleon/offline",
		Permanent: "Bobine_data/chromeleon_online_permanent_gas/chromeleon_online_permanent_gas",
	}
}

// Discovery resolves source files under a data root.
type Discovery struct {
	root   string
	layout Layout
}

// NewDiscovery creates a discovery rooted at root.
func NewDiscovery(root string, layout Layout) *Discovery {
	return &Discovery{root: root, layout: layout}
}

// Root returns the data root.
func (d *Discovery) Root() string { return d.root }

// Dir returns the directory of src.
func (d *Discovery) Dir(src models.Source) string {
	var rel string
	switch src {
	case models.SourceContext:
		rel = d.layout.Context
	case models.SourcePyrolysis:
		rel = d.layout.Pyrolysis
	case models.SourceOnline:
		rel = d.layout.Online
	case models.SourceOffline:
		rel = d.layout.Offline
	case models.SourcePermanent:
		rel = d.layout.Permanent
	default:
		return d.root
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.root, rel)
}

// First returns the first qualifying file of src in name order.
func (d *Discovery) First(src models.Source, exts ...string) (string, error) {
	files, err := FindFiles(d.Dir(src), exts...)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no %s file in %s", models.ErrSourceNotFound, strings.Join(exts, "/"), d.Dir(src))
	}
	return files[0], nil
}

// OfflinePair returns the R1 and R2 offline workbooks. Exactly one file
// must end with each tag.
func (d *Discovery) OfflinePair() (r1, r2 string, err error) {
	dir := d.Dir(models.SourceOffline)
	files, err := FindFiles(dir, ".xlsx")
	if err != nil {
		return "", "", err
	}
	if r1, err = pickTagged(files, "R1", dir); err != nil {
		return "", "", err
	}
	if r2, err = pickTagged(files, "R2", dir); err != nil {
		return "", "", err
	}
	return r1, r2, nil
}

func pickTagged(files []string, tag, dir string) (string, error) {
	var hits []string
	for _, f := range files {
		base := strings.ToUpper(filepath.Base(f))
		if strings.HasSuffix(strings.TrimSuffix(base, strings.ToUpper(filepath.Ext(base))), tag) {
			hits = append(hits, f)
		}
	}
	switch len(hits) {
	case 0:
		return "", fmt.Errorf("%w: no file ending with %s.xlsx in %s", models.ErrSourceNotFound, tag, dir)
	case 1:
		return hits[0], nil
	}
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = filepath.Base(h)
	}
	return "", fmt.Errorf("%w: %d files ending with %s.xlsx in %s (%s)",
		models.ErrAmbiguousSource, len(hits), tag, dir, strings.Join(names, ", "))
}

// FindFiles lists the regular files of dir matching one of exts, sorted
// by name. Hidden files, editor backups and lock files are skipped.
func FindFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s does not exist", models.ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || skipName(entry.Name()) {
			continue
		}
		if matchExt(entry.Name(), exts) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") || strings.HasPrefix(name, ".~lock")
}

func matchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
