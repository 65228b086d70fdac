package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
)

func TestParquetSchemaTypes(t *testing.T) {
	t.Parallel()

	rows := Rows{
		Columns: []string{gait.ColFilename, gait.ColGaitMean, "note"},
		Records: [][]string{{"1.csv", "1.25", "ok"}, {"2.csv", "", "3"}},
	}
	md := parquetSchema(rows)
	require.Len(t, md, 3)
	assert.Equal(t, "name=filename, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", md[0])
	assert.Equal(t, "name=gait mean, type=DOUBLE, repetitiontype=OPTIONAL", md[1])
	assert.True(t, strings.Contains(md[2], "BYTE_ARRAY"))
}

func TestMarshalRowsParquet(t *testing.T) {
	t.Parallel()

	row := gait.ExportRow{Columns: gait.ExportColumns()}
	for range row.Columns {
		row.Cells = append(row.Cells, gait.Cell{})
	}
	row.Cells[0] = gait.Cell{Text: "rec.csv", IsText: true}
	v := 1.25
	row.Cells[2] = gait.Cell{Number: &v}

	b, err := marshalRows(FormatParquet, exportRows(&row))
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, "PAR1", string(b[:4]))
	assert.Equal(t, "PAR1", string(b[len(b)-4:]))

	csv, err := marshalRows(FormatCSV, exportRows(&row))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "filename,selection,gait mean,"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatCSV, "CSV": FormatCSV, " parquet ": FormatParquet} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}
