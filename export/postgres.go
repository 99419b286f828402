package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tsawler/stitch/columns"
)

// Postgres writes each frame to its own table. Tables of one document share
// a schema named after the document. An existing table of the same name is
// replaced.
type Postgres struct {
	db    *sql.DB
	names names
}

// NewPostgres opens a connection pool for dsn and checks it.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Write creates the frame's table and inserts its rows in one transaction.
func (p *Postgres) Write(ctx context.Context, document string, frame *columns.Frame) error {
	schema := schemaName(document)
	table := p.names.unique(document, fileName(frame.Name))

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	for _, stmt := range []string{
		"CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{schema}.Sanitize(),
		"DROP TABLE IF EXISTS " + pgx.Identifier{schema, table}.Sanitize(),
		createTableSQL(schema, table, frame),
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create %s.%s: %w", schema, table, err)
		}
	}

	if frame.Len() > 0 && len(frame.Columns) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertSQL(schema, table, frame))
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		defer stmt.Close()

		for i := 0; i < frame.Len(); i++ {
			args := make([]any, len(frame.Columns))
			for j, c := range frame.Columns {
				args[j] = c.Values[i].Native(c.Kind, c.Integer)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert row %d into %s.%s: %w", i+1, schema, table, err)
			}
		}
	}
	return tx.Commit()
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func schemaName(document string) string {
	if s := Identifier(DocumentName(document)); s != "" {
		return strings.ToLower(s)
	}
	return "document"
}

// columnType maps an inferred column kind to a Postgres type.
func columnType(c columns.Column) string {
	switch c.Kind {
	case columns.Numeric:
		if c.Integer {
			return "BIGINT"
		}
		return "DOUBLE PRECISION"
	case columns.Temporal:
		return "DATE"
	default:
		return "TEXT"
	}
}

// columnIdentifiers sanitises column names, keeping them unique.
func columnIdentifiers(frame *columns.Frame) []string {
	var n names
	out := make([]string, len(frame.Columns))
	for j, c := range frame.Columns {
		name := Identifier(c.Name)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		out[j] = n.unique("", name)
	}
	return out
}

func createTableSQL(schema, table string, frame *columns.Frame) string {
	idents := columnIdentifiers(frame)
	defs := make([]string, len(frame.Columns))
	for j, c := range frame.Columns {
		defs[j] = pgx.Identifier{idents[j]}.Sanitize() + " " + columnType(c)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{schema, table}.Sanitize(), strings.Join(defs, ", "))
}

func insertSQL(schema, table string, frame *columns.Frame) string {
	idents := columnIdentifiers(frame)
	cols := make([]string, len(idents))
	params := make([]string, len(idents))
	for j, id := range idents {
		cols[j] = pgx.Identifier{id}.Sanitize()
		params[j] = fmt.Sprintf("$%d", j+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{schema, table}.Sanitize(), strings.Join(cols, ", "), strings.Join(params, ", "))
}
