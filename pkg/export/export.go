// Package export turns a population into an Arrow trait matrix and writes
// Parquet snapshots for offline analysis of evolution runs.
package export

import (
	"io"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/ktorvald/evoagent/pkg/errors"
	"github.com/ktorvald/evoagent/pkg/genome"
)

// traitMatrixSchema lays out one row per genome: identity and bookkeeping
// columns first, then one float64 column per trait in canonical order.
func traitMatrixSchema() *arrow.Schema {
	fields := []arrow.Field{
		{Name: "id", Type: arrow.BinaryTypes.String},
		{Name: "generation", Type: arrow.PrimitiveTypes.Int64},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
		{Name: "fitness", Type: arrow.PrimitiveTypes.Float64},
	}
	for _, t := range genome.AllTraits() {
		fields = append(fields, arrow.Field{Name: t.String(), Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

// fixed column offsets ahead of the trait columns
const traitColumnOffset = 4

// TraitMatrix builds an Arrow record with one row per genome. The caller
// owns the returned record and must Release it.
func TraitMatrix(population []*genome.Genome) arrow.Record {
	schema := traitMatrixSchema()
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	ids := builder.Field(0).(*array.StringBuilder)
	generations := builder.Field(1).(*array.Int64Builder)
	ages := builder.Field(2).(*array.Int64Builder)
	fitnesses := builder.Field(3).(*array.Float64Builder)

	for _, g := range population {
		ids.Append(g.ID)
		generations.Append(int64(g.Generation))
		ages.Append(int64(g.Age))
		fitnesses.Append(g.Fitness)
		for i := 0; i < genome.NumTraits; i++ {
			builder.Field(traitColumnOffset + i).(*array.Float64Builder).Append(g.Genes[i])
		}
	}

	return builder.NewRecord()
}

// WriteParquet writes the population's trait matrix as a Parquet file.
func WriteParquet(w io.Writer, population []*genome.Genome) error {
	record := TraitMatrix(population)
	defer record.Release()

	writer, err := pqarrow.NewFileWriter(
		record.Schema(),
		w,
		parquet.NewWriterProperties(),
		pqarrow.DefaultWriterProps(),
	)
	if err != nil {
		return errors.Wrap(err, errors.ExportFailed, "failed to create parquet writer")
	}

	if err := writer.Write(record); err != nil {
		writer.Close()
		return errors.Wrap(err, errors.ExportFailed, "failed to write trait matrix")
	}

	if err := writer.Close(); err != nil {
		return errors.Wrap(err, errors.ExportFailed, "failed to finalize parquet file")
	}
	return nil
}
