package obs

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxTracedSQL = 300

type pgxSpanKey struct{}

// PGXTracer is a pgx.QueryTracer. Spans are named after the sqlc query
// ("-- name: ListProducts :many") when present, else the SQL verb.
type PGXTracer struct{}

func (PGXTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	name, verb := describeSQL(data.SQL)
	spanName := "pgx " + verb
	if name != "" {
		spanName = "pgx " + name
	}
	ctx, span := otel.Tracer("kasir/db").Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", clipSQL(data.SQL)),
		attribute.Int("db.args", len(data.Args)),
	}
	if verb != "" {
		attrs = append(attrs, attribute.String("db.operation", verb))
	}
	if name != "" {
		attrs = append(attrs, attribute.String("db.query_name", name))
	}
	span.SetAttributes(attrs...)
	return context.WithValue(ctx, pgxSpanKey{}, span)
}

func (PGXTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(pgxSpanKey{}).(trace.Span)
	if !ok {
		return
	}
	defer span.End()
	if data.Err != nil {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
}

// describeSQL returns the sqlc query name and the upper-cased leading SQL verb.
func describeSQL(sql string) (name, verb string) {
	rest := strings.TrimSpace(sql)
	if strings.HasPrefix(rest, "-- name:") {
		header, body, _ := strings.Cut(rest, "\n")
		if fields := strings.Fields(strings.TrimPrefix(header, "-- name:")); len(fields) > 0 {
			name = fields[0]
		}
		rest = strings.TrimSpace(body)
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		verb = strings.ToUpper(fields[0])
	}
	return name, verb
}

func clipSQL(sql string) string {
	s := strings.TrimSpace(sql)
	if len(s) > maxTracedSQL {
		return s[:maxTracedSQL] + "..."
	}
	return s
}
