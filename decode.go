package arnak

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EntityMode controls how text fields are treated after the XML parser's
// single entity-decoding pass.
//
// The API escapes text that is already UTF-8 encoded, so after one decode
// pass a name like "Glück" arrives as "GlÃ¼ck": each byte of the UTF-8
// encoding was emitted as its own character reference. EntityModeCorrect
// undoes this by encoding the decoded text back to Latin-1 and reading the
// resulting bytes as UTF-8. The correction is only applied when that round
// trip succeeds, so already-correct text is left alone.
type EntityMode int

const (
	// EntityModeCorrect repairs double-encoded text fields. This is the
	// default.
	EntityModeCorrect EntityMode = iota
	// EntityModeRaw keeps text fields exactly as the single decoding pass
	// produced them, bug for bug compatible with the wire format.
	EntityModeRaw
)

// correctEntities applies the configured double-encoding policy to a
// decoded text field.
func correctEntities(s string, mode EntityMode) string {
	if mode == EntityModeRaw {
		return s
	}
	fixed, ok := latin1RoundTrip(s)
	if !ok {
		return s
	}
	return fixed
}

// latin1RoundTrip re-encodes s as Latin-1 and interprets the bytes as
// UTF-8. It reports false when s cannot be the result of double encoding:
// when it contains runes outside Latin-1, no high code points at all, or
// when the resulting bytes are not valid UTF-8.
func latin1RoundTrip(s string) (string, bool) {
	hasHigh := false
	for _, r := range s {
		if r > 0xFF {
			return "", false
		}
		if r >= 0x80 {
			hasHigh = true
		}
	}
	if !hasHigh {
		return "", false
	}
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// requiredAttr returns the named attribute or a MissingField error.
func (n *node) requiredAttr(name string) (string, error) {
	v, ok := n.attr(name)
	if !ok {
		return "", newMissingFieldError(n.tag(), name)
	}
	return v, nil
}

// intAttr returns the named attribute parsed as an int. Absence is a
// MissingField error, an unparsable value an InvalidNumber error.
func (n *node) intAttr(name string) (int, error) {
	raw, err := n.requiredAttr(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidNumberError(n.tag(), name, raw)
	}
	return v, nil
}

// optionalIntAttr is like intAttr but absence yields zero.
func (n *node) optionalIntAttr(name string) (int, error) {
	raw, ok := n.attr(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidNumberError(n.tag(), name, raw)
	}
	return v, nil
}

// optionalFloatAttr returns the named attribute parsed as a float, or zero
// when absent.
func (n *node) optionalFloatAttr(name string) (float64, error) {
	raw, ok := n.attr(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newInvalidNumberError(n.tag(), name, raw)
	}
	return v, nil
}

// boolAttr parses a "1"/"0" attribute. Absence yields false, any other
// value is an UnexpectedValue error.
func (n *node) boolAttr(name string) (bool, error) {
	raw, ok := n.attr(name)
	if !ok {
		return false, nil
	}
	switch raw {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, newUnexpectedValueError(n.tag(), name, raw)
	}
}

// childValue returns the value attribute of the first child with the given
// tag, for the common <tag value="..."/> shape. Reports false when the
// child or the attribute is absent.
func (n *node) childValue(tag string) (string, bool) {
	c := n.child(tag)
	if c == nil {
		return "", false
	}
	return c.attr("value")
}

// requiredChildValue is like childValue but absence is a MissingField error.
func (n *node) requiredChildValue(tag string) (string, error) {
	v, ok := n.childValue(tag)
	if !ok {
		return "", newMissingFieldError(n.tag(), tag)
	}
	return v, nil
}

// childIntValue parses the value attribute of the first child with the
// given tag as an int, with zero for absence.
func (n *node) childIntValue(tag string) (int, error) {
	raw, ok := n.childValue(tag)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidNumberError(tag, "value", raw)
	}
	return v, nil
}

// childFloatValue parses the value attribute of the first child with the
// given tag as a float, with zero for absence.
func (n *node) childFloatValue(tag string) (float64, error) {
	raw, ok := n.childValue(tag)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newInvalidNumberError(tag, "value", raw)
	}
	return v, nil
}

// childText returns the trimmed text content of the first child with the
// given tag, or the empty string.
func (n *node) childText(tag string) string {
	c := n.child(tag)
	if c == nil {
		return ""
	}
	return c.text()
}

// childIntText parses the text content of the first child with the given
// tag as an int, with zero for absence.
func (n *node) childIntText(tag string) (int, error) {
	c := n.child(tag)
	if c == nil {
		return 0, nil
	}
	raw := c.text()
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidNumberError(tag, "text", raw)
	}
	return v, nil
}
