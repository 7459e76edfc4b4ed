package bobine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// SectionRequest selects one section and, for time series, the compounds
// to plot. No elements means all of them.
type SectionRequest struct {
	Name     string   `json:"name"`
	Elements []string `json:"chimicalElements,omitempty"`
}

// UnmarshalJSON accepts a bare section name or an object.
func (s *SectionRequest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = SectionRequest{}
		return json.Unmarshal(data, &s.Name)
	}
	var obj struct {
		Name        string   `json:"name"`
		Elements    []string `json:"chimicalElements"`
		AltElements []string `json:"elements"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("section request: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("section request: missing name")
	}
	s.Name = obj.Name
	s.Elements = obj.Elements
	if len(s.Elements) == 0 {
		s.Elements = obj.AltElements
	}
	return nil
}

// Request lists the sections wanted per source.
type Request struct {
	Sections  map[models.Source][]SectionRequest `json:"sections"`
	TimeRange models.TimeRange                   `json:"time_range,omitzero"`
}

// ParseRequest decodes a request. Sources are top-level keys; an optional
// "time_range" key bounds the pyrolysis data.
func ParseRequest(data []byte) (Request, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	req := Request{Sections: make(map[models.Source][]SectionRequest)}
	for key, msg := range raw {
		if key == "time_range" {
			if err := json.Unmarshal(msg, &req.TimeRange); err != nil {
				return Request{}, fmt.Errorf("invalid time_range: %w", err)
			}
			continue
		}
		src := models.Source(key)
		if !slices.Contains(models.ReportSources, src) {
			return Request{}, fmt.Errorf("%w: source %q", ErrUnknownSection, key)
		}
		var secs []SectionRequest
		if err := json.Unmarshal(msg, &secs); err != nil {
			return Request{}, fmt.Errorf("invalid sections for %s: %w", key, err)
		}
		if len(secs) > 0 {
			req.Sections[src] = secs
		}
	}
	return req, nil
}

// Empty reports whether no section is requested.
func (r Request) Empty() bool {
	for _, secs := range r.Sections {
		if len(secs) > 0 {
			return false
		}
	}
	return true
}

