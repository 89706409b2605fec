package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Subject", "Final"},
		Rows: []map[string]string{
			{"Subject": "Mathematics", "Final": "88.90"},
			{"Subject": "Science", "Final": "91.20"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Subject,Final\nMathematics,88.90\nScience,91.20\n", string(out))
}

func TestRenderCSVMissingCell(t *testing.T) {
	out, err := RenderCSV(Dataset{
		Headers: []string{"Subject", "Final"},
		Rows:    []map[string]string{{"Subject": "Mathematics"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Subject,Final\nMathematics,\n", string(out))
}

func TestRenderCSVNoHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	assert.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleDataset(), "Report Card - Alice Reyes")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDFNoHeaders(t *testing.T) {
	_, err := RenderPDF(Dataset{}, "empty")
	assert.Error(t, err)
}
