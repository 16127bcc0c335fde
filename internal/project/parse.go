package project

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/lc/rigconf/internal/value"
)

// sectionMarker opens a section. The literal is case-sensitive; the title
// that follows is free text, e.g. "#class Device Configuration".
const sectionMarker = "#class "

// ParseError reports malformed project file content. Err aggregates every
// offending line so a single load attempt surfaces all of them.
type ParseError struct {
	Project string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing project %q: %v", e.Project, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a project file and builds the full Project. Any malformed
// line fails the whole file: a project is either fully parsed or not
// loaded at all.
//
// Format rules:
//   - "#class <Title>" opens a section; the title is normalized to an
//     identifier by removing all whitespace.
//   - any other line starting with "#" is a comment and is dropped.
//   - "KEY=VALUE" assigns inside the current section (first "=" splits,
//     both sides trimmed, empty value allowed).
//   - blank lines are ignored; anything else is an error, as is an
//     assignment before the first section marker.
func Parse(name string, r io.Reader) (*Project, error) {
	var (
		ordered []*Section
		byName  = map[string]*Section{}
		current *Section
		errs    error
	)

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if title := strings.TrimPrefix(line, sectionMarker); title != line {
				if id := normalizeTitle(title); id != "" {
					if s, ok := byName[id]; ok {
						// Re-declared title reopens the existing section.
						current = s
					} else {
						current = &Section{name: id, vals: map[string]value.Value{}}
						byName[id] = current
						ordered = append(ordered, current)
					}
				}
			}
			// Everything else behind "#" is a comment.
			continue
		}

		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("line %d: not a comment, section marker or assignment: %q", lineNo, line))
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: assignment with empty key", lineNo))
			continue
		}
		if current == nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: assignment to %q outside any section", lineNo, key))
			continue
		}

		v := value.Coerce(strings.TrimSpace(raw))
		if _, exists := current.vals[key]; !exists {
			current.keys = append(current.keys, key)
		}
		// Duplicate key inside a section: last assignment wins.
		current.vals[key] = v
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return nil, &ParseError{Project: name, Err: errs}
	}

	return &Project{
		name:     name,
		loadID:   uuid.NewString(),
		sections: ordered,
		byName:   byName,
	}, nil
}

// normalizeTitle maps a free-text section title to its identifier by
// removing every whitespace run and keeping all other characters verbatim:
// "Device Configuration" -> "DeviceConfiguration", "Gen 3 Devices" ->
// "Gen3Devices". Hyphens and digits survive unchanged.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), "")
}
