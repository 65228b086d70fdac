package pipeline

import (
	"fmt"
	"strconv"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// parquetSchema describes every column as an optional DOUBLE unless it is
// a text column or holds a cell that is not a number.
func parquetSchema(rows Rows) []string {
	md := make([]string, len(rows.Columns))
	for i, name := range rows.Columns {
		typ := "type=DOUBLE"
		if !numericColumn(name, i, rows.Records) {
			typ = "type=BYTE_ARRAY, convertedtype=UTF8"
		}
		md[i] = fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", name, typ)
	}
	return md
}

func numericColumn(name string, col int, records [][]string) bool {
	if name == gait.ColFilename || name == gait.ColSelection {
		return false
	}
	for _, rec := range records {
		if rec[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(rec[col], 64); err != nil {
			return false
		}
	}
	return true
}

func writeParquet(fw source.ParquetFile, rows Rows) error {
	pw, err := writer.NewCSVWriter(parquetSchema(rows), fw, 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, rec := range rows.Records {
		cells := make([]*string, len(rec))
		for i := range rec {
			if rec[i] != "" {
				cells[i] = &rec[i]
			}
		}
		if err := pw.WriteString(cells); err != nil {
			_ = pw.WriteStop()
			return err
		}
	}
	return pw.WriteStop()
}

func writeRowsParquet(path string, rows Rows) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	if err := writeParquet(fw, rows); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func marshalRowsParquet(rows Rows) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := writeParquet(fw, rows); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
