package lsp

import "lunar/internal/source"

// applyChanges applies content changes in order. A change without a range
// replaces the whole buffer, which is what full sync sends.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		file := source.NewFile("", []byte(text), source.FileVirtual)
		start := int(offsetForPositionInFile(file, change.Range.Start))
		end := int(offsetForPositionInFile(file, change.Range.End))
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}
