// Package export writes recorded run histories as Arrow IPC files so the
// tick series can be loaded directly into columnar analysis tooling.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/oscillab/resonance/internal/runlog"
)

// Schema returns the Arrow schema for an exported tick series. Column order
// matches the runlog sample layout.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "tick", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "coherence", Type: arrow.PrimitiveTypes.Float64},
		{Name: "entropy", Type: arrow.PrimitiveTypes.Float64},
		{Name: "energy", Type: arrow.PrimitiveTypes.Float64},
		{Name: "margin", Type: arrow.PrimitiveTypes.Float64},
		{Name: "active_count", Type: arrow.PrimitiveTypes.Int64},
		{Name: "dominant_bin", Type: arrow.PrimitiveTypes.Int64},
		{Name: "peak_prime", Type: arrow.PrimitiveTypes.Int64},
		{Name: "dominant_axis", Type: arrow.PrimitiveTypes.Int64},
		{Name: "fired", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)
}

// Write streams the samples as a single Arrow record batch to w.
func Write(w io.WriteSeeker, samples []runlog.Sample) error {
	mem := memory.NewGoAllocator()
	schema := Schema()

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for _, sample := range samples {
		builder.Field(0).(*array.Uint64Builder).Append(sample.Tick)
		builder.Field(1).(*array.Float64Builder).Append(sample.Coherence)
		builder.Field(2).(*array.Float64Builder).Append(sample.Entropy)
		builder.Field(3).(*array.Float64Builder).Append(sample.Energy)
		builder.Field(4).(*array.Float64Builder).Append(sample.Margin)
		builder.Field(5).(*array.Int64Builder).Append(int64(sample.ActiveCount))
		builder.Field(6).(*array.Int64Builder).Append(int64(sample.DominantBin))
		builder.Field(7).(*array.Int64Builder).Append(int64(sample.PeakPrime))
		builder.Field(8).(*array.Int64Builder).Append(int64(sample.DominantAxis))
		builder.Field(9).(*array.BooleanBuilder).Append(sample.Fired)
	}

	record := builder.NewRecord()
	defer record.Release()

	writer, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}

	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("writing arrow record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}

	return nil
}

// WriteFile writes the samples as an Arrow IPC file at path.
func WriteFile(path string, samples []runlog.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := Write(f, samples); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	return nil
}
