package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consolidator/core/keys"
	"consolidator/core/sheet"
)

func TestAppendMissing(t *testing.T) {
	source := sheet.NewTable("src", []string{"Expediente", "Dato"})
	source.AppendRow([]any{"A 1", "uno"})
	source.AppendRow([]any{"B2", "dos"})
	source.AppendRow([]any{nil, "sin clave"})
	source.AppendRow([]any{"C3", "tres"})
	source.AppendRow([]any{"C3", "tres-final"})

	target := sheet.NewTable("dst", []string{"Expediente", "Dato"})
	target.AppendRow([]any{"A1", "ya estaba"})

	res := AppendMissing(source, target, keys.Join)

	assert.Equal(t, 3, res.SourceKeys)
	assert.Equal(t, 1, res.TargetKeys)
	assert.Equal(t, [][]any{{"B2", "dos"}, {"C3", "tres-final"}}, res.Rows)
}

func TestAppendMissing_NothingNew(t *testing.T) {
	source := sheet.NewTable("src", []string{"Expediente"})
	source.AppendRow([]any{"A1"})
	target := source.Clone()

	res := AppendMissing(source, target, keys.Join)
	assert.Empty(t, res.Rows)
}
