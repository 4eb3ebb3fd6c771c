package common

import (
	"github.com/atotto/clipboard"

	"suptui/internal/table"
)

// ClipboardPrinter hands printable table views to the system clipboard.
type ClipboardPrinter struct{}

// Print copies the title and text to the clipboard.
func (ClipboardPrinter) Print(title, text string) error {
	return clipboard.WriteAll(title + "\n\n" + text)
}

var _ table.Printer = ClipboardPrinter{}
