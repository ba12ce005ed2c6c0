package routes

import (
	"strings"

	"github.com/vango-dev/routegen/internal/templates"
)

// Document is a source file split around its generated region.
type Document struct {
	// Preamble is everything before the start marker, or the whole file when
	// there is no region.
	Preamble string

	// Generated is the region, markers included.
	Generated string

	// Postamble is everything after the end marker.
	Postamble string

	// HasRegion reports whether both markers were found.
	HasRegion bool
}

// ParseDocument splits content at the first start marker and the first end
// marker following it. A start marker without a matching end marker does not
// form a region.
func ParseDocument(content string) Document {
	start := strings.Index(content, templates.RegionStart)
	if start < 0 {
		return Document{Preamble: content}
	}
	rest := content[start+len(templates.RegionStart):]
	end := strings.Index(rest, templates.RegionEnd)
	if end < 0 {
		return Document{Preamble: content}
	}
	stop := start + len(templates.RegionStart) + end + len(templates.RegionEnd)

	return Document{
		Preamble:  content[:start],
		Generated: content[start:stop],
		Postamble: content[stop:],
		HasRegion: true,
	}
}

// Splice returns the document with its region replaced by region. Without a
// region, region and a blank line are prepended to the content.
func (d Document) Splice(region string) string {
	if !d.HasRegion {
		return region + "\n\n" + d.Preamble
	}
	return d.Preamble + region + d.Postamble
}

// String reassembles the document.
func (d Document) String() string {
	return d.Preamble + d.Generated + d.Postamble
}
