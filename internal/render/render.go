// Package render prints unified-diff text with a display attribute per line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Class is the display class of one line of diff output.
type Class int

const (
	// Context covers unchanged lines, file headers and anything unrecognised.
	Context Class = iota
	Removed
	Added
	HunkHeader
)

func (c Class) String() string {
	switch c {
	case Context:
		return "context"
	case Removed:
		return "removed"
	case Added:
		return "added"
	case HunkHeader:
		return "hunk-header"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Classify returns the class of a single line by its prefix.
func Classify(line string) Class {
	switch {
	case strings.HasPrefix(line, "@@"):
		return HunkHeader
	case strings.HasPrefix(line, "-"):
		return Removed
	case strings.HasPrefix(line, "+"):
		return Added
	default:
		return Context
	}
}

// Palette maps classes to colors. A class without an entry is printed as is.
type Palette map[Class]termenv.Color

// DefaultPalette is red for removed lines, green for added lines and blue for
// hunk headers.
func DefaultPalette() Palette {
	return Palette{
		Removed:    termenv.ANSIRed,
		Added:      termenv.ANSIGreen,
		HunkHeader: termenv.ANSIBlue,
	}
}

// Renderer writes diff text line by line, styling each line according to its
// class.
type Renderer struct {
	// Profile selects the escape sequences; termenv.Ascii disables styling.
	Profile termenv.Profile
	Palette Palette
	// Classify defaults to the package-level Classify.
	Classify func(line string) Class
}

// New returns a renderer using the default palette, with color turned on or
// off.
func New(color bool) Renderer {
	r := Renderer{Profile: termenv.Ascii, Palette: DefaultPalette()}
	if color {
		r.Profile = termenv.ANSI
	}
	return r
}

// Render writes text to w. Lines before the first hunk header are file
// headers and are always in the Context class, whatever their prefix.
func (r Renderer) Render(w io.Writer, text string) error {
	classify := r.Classify
	if classify == nil {
		classify = Classify
	}
	inHeader := true
	for _, line := range splitRows(text) {
		class := classify(line)
		if class == HunkHeader {
			inHeader = false
		}
		if inHeader {
			class = Context
		}
		if _, err := io.WriteString(w, r.style(class, line)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Lines is a convenience for Render into a string.
func (r Renderer) Lines(text string) string {
	var b strings.Builder
	_ = r.Render(&b, text)
	return b.String()
}

func (r Renderer) style(class Class, line string) string {
	c, ok := r.Palette[class]
	if !ok || c == nil {
		return line
	}
	return r.Profile.String(line).Foreground(c).String()
}

// splitRows splits text on newlines, without a trailing empty row.
func splitRows(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
