package postgres

import (
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/changelog"
	"github.com/lib/pq"
)

// cursorID names the single cursor row this indexer owns.
const cursorID = "blockmeta"

const (
	queryUpsertCursor = `
INSERT INTO block_meta_cursor (id, block_number, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET block_number = EXCLUDED.block_number, updated_at = EXCLUDED.updated_at`

	querySelectCursor = `SELECT block_number FROM block_meta_cursor WHERE id = $1`

	queryTableExists = `
SELECT EXISTS (
	SELECT FROM information_schema.tables
	WHERE table_name = $1
)`
)

var tableColumns = map[string]struct{}{
	changelog.ColumnAt:         {},
	changelog.ColumnNumber:     {},
	changelog.ColumnHash:       {},
	changelog.ColumnParentHash: {},
	changelog.ColumnTimestamp:  {},
}

// insertQuery renders an idempotent INSERT of the record's new column values.
func insertQuery(record changelog.Record) (string, []any, error) {
	columns := make([]string, 0, len(record.Columns)+1)
	placeholders := make([]string, 0, len(record.Columns)+1)
	args := make([]any, 0, len(record.Columns)+1)

	columns = append(columns, "id")
	placeholders = append(placeholders, "$1")
	args = append(args, record.PrimaryKey)

	for _, column := range record.Columns {
		if _, ok := tableColumns[column.Name]; !ok {
			return "", nil, fmt.Errorf("unknown column %q", column.Name)
		}
		columns = append(columns, pq.QuoteIdentifier(column.Name))
		args = append(args, valueArg(column.New))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
		pq.QuoteIdentifier(record.Table),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args, nil
}

// updateQuery renders an UPDATE of the changed columns keyed by the record's primary key.
func updateQuery(record changelog.Record) (string, []any, error) {
	if len(record.Columns) == 0 {
		return "", nil, fmt.Errorf("update of %s has no columns", record.PrimaryKey)
	}

	sets := make([]string, 0, len(record.Columns))
	args := make([]any, 0, len(record.Columns)+1)
	for _, column := range record.Columns {
		if _, ok := tableColumns[column.Name]; !ok {
			return "", nil, fmt.Errorf("unknown column %q", column.Name)
		}
		args = append(args, valueArg(column.New))
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(column.Name), len(args)))
	}
	args = append(args, record.PrimaryKey)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		pq.QuoteIdentifier(record.Table),
		strings.Join(sets, ", "),
		len(args),
	)
	return query, args, nil
}

func valueArg(v *changelog.Value) any {
	if v == nil {
		return nil
	}
	return v.Text
}
