package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"logias/internal/models"
)

// Querier is satisfied by *pgx.Conn and *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the dataset from a table with one column per
// record field. It only ever issues a single SELECT.
type PostgresSource struct {
	dsn   string
	table string
}

func NewPostgresSource(dsn, table string) *PostgresSource {
	return &PostgresSource{dsn: dsn, table: table}
}

func (s *PostgresSource) Describe() string { return "postgres table " + s.table }

func (s *PostgresSource) Fetch(ctx context.Context) ([]models.Logia, error) {
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, loadError("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)
	return queryLogias(ctx, conn, s.table)
}

func selectLogias(table string) string {
	return fmt.Sprintf(
		"SELECT numero, nombre, direccion, ciudad, jurisdiccion, dias, hora, url_maps FROM %s ORDER BY numero",
		pgx.Identifier{table}.Sanitize(),
	)
}

func queryLogias(ctx context.Context, q Querier, table string) ([]models.Logia, error) {
	rows, err := q.Query(ctx, selectLogias(table))
	if err != nil {
		return nil, loadError("query %s: %w", table, err)
	}
	logias, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Logia])
	if err != nil {
		return nil, loadError("scan %s: %w", table, err)
	}
	if logias == nil {
		logias = []models.Logia{}
	}
	return logias, nil
}
