// Package plan renders a compiled table as stable JSON for the provisioning
// engine. Map keys are sorted so two compilations of the same declaration
// set encode byte-for-byte identically.
package plan

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/agsys/routeplan/internal/model"
)

var api = sonic.Config{
	SortMapKeys: true,
	EscapeHTML:  false,
}.Froze()

// Encode marshals the table with sorted keys and two-space indentation.
func Encode(table *model.CompiledRouteTable) ([]byte, error) {
	return api.MarshalIndent(table, "", "  ")
}

// Write encodes the table to w with a trailing newline.
func Write(w io.Writer, table *model.CompiledRouteTable) error {
	b, err := Encode(table)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
