package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/changelog"
)

const insertChangesQuery = `
INSERT INTO block_meta_changes (
	table_name,
	primary_key,
	ordinal,
	operation,
	block_number,
	column_name,
	old_value,
	new_value
) VALUES`

// WriteRecords appends one row per changed column. Rows of a replayed block collapse
// on (table_name, primary_key, ordinal, column_name) once merged.
func (r *Repository) WriteRecords(ctx context.Context, blockNumber uint64, records []changelog.Record) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("write_records", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertChangesQuery)
	if err != nil {
		return fmt.Errorf("prepare changes batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = batch.Abort()
		}
	}()

	for _, record := range records {
		for _, column := range record.Columns {
			if err = batch.Append(
				record.Table,
				record.PrimaryKey,
				record.Ordinal,
				record.Operation.String(),
				blockNumber,
				column.Name,
				valueText(column.Old),
				valueText(column.New),
			); err != nil {
				return fmt.Errorf("append change %s.%s: %w", record.PrimaryKey, column.Name, err)
			}
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert changes: %w", err)
	}
	return nil
}

func valueText(v *changelog.Value) *string {
	if v == nil {
		return nil
	}
	text := v.Text
	return &text
}
