package loader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logias/internal/models"
)

var logiaColumns = []string{"numero", "nombre", "direccion", "ciudad", "jurisdiccion", "dias", "hora", "url_maps"}

// fakeRows serves an in-memory result set through the pgx.Rows interface.
type fakeRows struct {
	columns []string
	values  [][]any
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Values() ([]any, error)        { return r.values[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, name := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d targets for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			v, ok := row[i].(int)
			if !ok {
				return fmt.Errorf("scan column %s: want int, got %T", r.columns[i], row[i])
			}
			*p = v
		case *string:
			v, ok := row[i].(string)
			if !ok {
				return fmt.Errorf("scan column %s: want string, got %T", r.columns[i], row[i])
			}
			*p = v
		default:
			return fmt.Errorf("scan column %s: unsupported target %T", r.columns[i], d)
		}
	}
	return nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestQueryLogias(t *testing.T) {
	errConn := errors.New("connection reset")

	cases := []struct {
		name    string
		querier *fakeQuerier
		want    []models.Logia
		wantErr error
	}{
		{
			name: "maps columns by db tag",
			querier: &fakeQuerier{rows: &fakeRows{
				// Column order differs from the struct to force name matching.
				columns: []string{"url_maps", "numero", "nombre", "direccion", "ciudad", "jurisdiccion", "dias", "hora"},
				values: [][]any{
					{"https://maps.example/3", 3, "Unión y Cordialidad", "Serrano 443", "Valparaíso", "Valparaíso", "Lunes", "19:30"},
					{"http://x", 12, "Renacimiento", "Calle X", "Santiago", "GLCh", "Jueves", "20:00"},
				},
			}},
			want: []models.Logia{
				{Numero: 3, Nombre: "Unión y Cordialidad", Direccion: "Serrano 443", Ciudad: "Valparaíso",
					Jurisdiccion: "Valparaíso", Dias: "Lunes", Hora: "19:30", URLMaps: "https://maps.example/3"},
				{Numero: 12, Nombre: "Renacimiento", Direccion: "Calle X", Ciudad: "Santiago",
					Jurisdiccion: "GLCh", Dias: "Jueves", Hora: "20:00", URLMaps: "http://x"},
			},
		},
		{
			name:    "empty table is zero records",
			querier: &fakeQuerier{rows: &fakeRows{columns: logiaColumns}},
			want:    []models.Logia{},
		},
		{
			name:    "query error",
			querier: &fakeQuerier{err: errConn},
			wantErr: errConn,
		},
		{
			name:    "iteration error",
			querier: &fakeQuerier{rows: &fakeRows{columns: logiaColumns, err: errConn}},
			wantErr: errConn,
		},
		{
			name: "missing column",
			querier: &fakeQuerier{rows: &fakeRows{
				columns: []string{"numero", "nombre"},
				values:  [][]any{{1, "Sin dirección"}},
			}},
			wantErr: ErrLoad,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := queryLogias(context.Background(), tc.querier, "logias")
			assert.Equal(t, selectLogias("logias"), tc.querier.sql)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrLoad)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
			assert.True(t, tc.querier.rows.closed)
		})
	}
}
