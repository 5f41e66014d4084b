package linediff

import "strings"

// ToStringEdit converts the diff into an edit on the original document
// (its lines joined with "\n") whose application yields the modified
// document. Offsets are UTF-16 code units. original and modified must
// be the inputs the diff was computed from.
func (d *LinesDiff) ToStringEdit(original, modified []string) StringEdit {
	annotated := d.ToAnnotatedStringEdit(original, modified).
		JoinTouching(func(a, b bool) (bool, bool) { return a && b, true })

	replacements := make([]StringReplacement, len(annotated.Replacements))
	for i, r := range annotated.Replacements {
		replacements[i] = StringReplacement{Range: r.Range, NewText: r.NewText}
	}
	edit, err := NewStringEdit(replacements...)
	if err != nil {
		bugf("diff produced an invalid edit: %v", err)
	}
	return edit
}

// ToAnnotatedStringEdit is like ToStringEdit but annotates each
// replacement with whether it only changes whitespace, joining
// touching replacements only when their annotations agree.
func (d *LinesDiff) ToAnnotatedStringEdit(original, modified []string) AnnotatedStringEdit[bool] {
	if len(original) == 0 {
		original = []string{""}
	}
	if len(modified) == 0 {
		modified = []string{""}
	}

	// starts[i] is the offset of line i+1; the value one past the last
	// line overshoots the document length by the nonexistent final
	// newline.
	starts := make([]int, len(original)+1)
	for i, line := range original {
		starts[i+1] = starts[i] + utf16Length(line) + 1
	}
	total := starts[len(original)] - 1

	var edit AnnotatedStringEdit[bool]
	for _, c := range d.Changes {
		s, e := c.Original.Start, c.Original.EndExclusive
		modLines := modified[c.Modified.Start-1 : c.Modified.EndExclusive-1]
		joined := strings.Join(modLines, "\n")

		var r AnnotatedStringReplacement[bool]
		switch {
		case s == e && s <= len(original):
			// Insert before line s.
			r.Range = OffsetRange{Start: starts[s-1], EndExclusive: starts[s-1]}
			r.NewText = joined + "\n"
		case s == e:
			// Insert after the last line.
			r.Range = OffsetRange{Start: total, EndExclusive: total}
			r.NewText = "\n" + joined
		case e <= len(original):
			// The replaced span ends before a surviving line, so it
			// owns its trailing newlines.
			r.Range = OffsetRange{Start: starts[s-1], EndExclusive: starts[e-1]}
			if len(modLines) > 0 {
				r.NewText = joined + "\n"
			}
		case s == 1:
			// The whole document.
			r.Range = OffsetRange{Start: 0, EndExclusive: total}
			r.NewText = joined
		default:
			// The replaced span runs to the end of the document, so it
			// owns the newline before it instead.
			r.Range = OffsetRange{Start: starts[s-1] - 1, EndExclusive: total}
			if len(modLines) > 0 {
				r.NewText = "\n" + joined
			}
		}
		r.Data = whitespaceOnlyChange(original[s-1:e-1], modLines)
		edit.Replacements = append(edit.Replacements, r)
	}

	return edit.JoinTouching(func(a, b bool) (bool, bool) {
		if a == b {
			return a, true
		}
		return false, false
	})
}

// whitespaceOnlyChange reports whether the two line blocks differ only
// in leading or trailing whitespace.
func whitespaceOnlyChange(oldLines, newLines []string) bool {
	if len(oldLines) != len(newLines) {
		return false
	}
	for i := range oldLines {
		if strings.TrimSpace(oldLines[i]) != strings.TrimSpace(newLines[i]) {
			return false
		}
	}
	return true
}
