package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
)

const schemaTemplate = `CREATE TABLE IF NOT EXISTS %[1]s (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[3]s ON %[1]s USING GIN (payload jsonb_path_ops);`

// EnsureSchema creates the events table and its indexes if they do not exist yet.
// It is safe to call on every application start.
func (es EventStore) EnsureSchema(ctx context.Context) error {
	ddl := es.buildSchemaDDL()

	start := time.Now()
	_, execErr := es.db.Exec(ctx, ddl)
	es.logQueryWithDuration(ctx, ddl, logActionSchema, time.Since(start))

	if execErr != nil {
		es.logError(ctx, logMsgSchemaFailed, logAttrError, execErr.Error(), logAttrTable, es.eventTableName)

		return errors.Join(eventstore.ErrCreatingSchemaFailed, execErr)
	}

	es.logOperation(ctx, logMsgSchemaEnsured, logAttrTable, es.eventTableName)

	return nil
}

func (es EventStore) buildSchemaDDL() sqlQueryString {
	return fmt.Sprintf(
		schemaTemplate,
		pgx.Identifier{es.eventTableName}.Sanitize(),
		pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize(),
		pgx.Identifier{es.eventTableName + "_payload_idx"}.Sanitize(),
	)
}
