package bobine

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/lucas-science/bobine/pkg/bobine/parser"
)

// ContextMasses reads the mass readings of the context workbook.
func ContextMasses(root string, opts Options) (models.MassReadings, error) {
	c, err := newWorkspace(root, opts).loadContext()
	if err != nil {
		return models.MassReadings{}, err
	}
	return c.masses, nil
}

// ValidateContext checks the context workbook. Problems are reported in
// the result, not as an error.
func ValidateContext(root string, opts Options) models.ContextValidation {
	w := newWorkspace(root, opts)
	dir := w.d.Dir(models.SourceContext)
	if _, err := os.Stat(dir); err != nil {
		return models.ContextValidation{
			ErrorType:    "missing_directory",
			ErrorMessage: fmt.Sprintf("context directory %s does not exist; check that the files were imported", dir),
		}
	}
	c, err := w.loadContext()
	if err != nil {
		kind := "invalid_format"
		if errors.Is(err, ErrSourceNotFound) {
			kind = "missing_file"
		}
		return models.ContextValidation{ErrorType: kind, ErrorMessage: err.Error()}
	}
	return parser.ValidateContext(c.masses)
}

// ExperienceName returns the experiment name of the context workbook.
func ExperienceName(root string, opts Options) (string, error) {
	c, err := newWorkspace(root, opts).loadContext()
	if err != nil {
		return "", err
	}
	return parser.ExperienceName(c.grid, c.path), nil
}

// ContextBase64 returns the context workbook file encoded in base64.
func ContextBase64(root string, opts Options) (string, error) {
	c, err := newWorkspace(root, opts).loadContext()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// TimeRange returns the first and last time stamps of the pyrolysis log.
func TimeRange(root string, opts Options) (models.TimeRange, error) {
	log, err := newWorkspace(root, opts).loadPyrolysis()
	if err != nil {
		return models.TimeRange{}, err
	}
	return parser.SensorTimeRange(log)
}
