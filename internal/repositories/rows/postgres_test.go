package rows

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/parroquia/contentadmin/internal/common"
	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/recordsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func strPtr(s string) *string { return &s }

var ts = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func TestList_OrdersAndScans(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	q := regexp.QuoteMeta(`SELECT id, title, body, source, created_at FROM franciscan_prayers ORDER BY created_at DESC`)
	mock.ExpectQuery(q).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "body", "source", "created_at"}).
			AddRow("p1", "Paz", "Senor, hazme\n\ninstrumento", "San Francisco", ts).
			AddRow("p2", "Cantico", nil, nil, nil),
	)

	got, err := store.List(context.Background(), []recordsync.OrderBy{{Column: "created_at", Desc: true}})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Senor, hazme\n\ninstrumento", got[0].Body)
	require.NotNil(t, got[0].Source)
	assert.Equal(t, "San Francisco", *got[0].Source)
	assert.Equal(t, ts, got[0].CreatedAt)

	assert.Equal(t, "", got[1].Body)
	assert.Nil(t, got[1].Source)
	assert.True(t, got[1].CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyTableReturnsEmptySlice(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Reflections())

	mock.ExpectQuery(`SELECT .* FROM reflexiones$`).
		WillReturnRows(sqlmock.NewRows(Reflections().Columns))

	got, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_UnknownOrderColumn(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	_, err := store.List(context.Background(), []recordsync.OrderBy{{Column: "fecha; DROP TABLE x"}})
	require.ErrorIs(t, err, common.ErrorUnknownColumn)
	assert.Contains(t, err.Error(), "franciscan_prayers.fecha; DROP TABLE x")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	boom := errors.New("db is down")
	mock.ExpectQuery(`SELECT .* FROM franciscan_prayers`).WillReturnError(boom)

	_, err := store.List(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to select franciscan_prayers")
}

func TestList_ScanError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Lessons())

	rows := sqlmock.NewRows(Lessons().Columns).
		AddRow("l1", "Uno", nil, "Bautismo", nil, "{a}", nil, nil, "not-a-number", true, ts, ts)
	mock.ExpectQuery(`SELECT .* FROM lecciones_catecismo`).WillReturnRows(rows)

	_, err := store.List(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan error")
}

func TestList_RowsError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	boom := errors.New("connection reset")
	rows := sqlmock.NewRows(Prayers().Columns).
		AddRow("p1", "Paz", "x", nil, ts).
		RowError(0, boom)
	mock.ExpectQuery(`SELECT .* FROM franciscan_prayers`).WillReturnRows(rows)

	_, err := store.List(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rows error")
}

func TestCreate_InsertsWrittenColumns(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Reflections())

	q := regexp.QuoteMeta(`INSERT INTO reflexiones (titulo, subtitulo, autor, contenido, fecha) VALUES ($1, $2, $3, $4, $5)`)
	mock.ExpectExec(q).
		WithArgs("Adviento", "Esperar", "Fr. Juan", pq.StringArray{"uno", "dos"}, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), models.Reflection{
		Title:    "Adviento",
		Subtitle: "Esperar",
		Author:   "Fr. Juan",
		Content:  []string{"uno", "dos"},
		Date:     ts,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ParishPassesJSONAsText(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Parishes())

	mock.ExpectExec(`INSERT INTO parroquia_franciscana`).
		WithArgs("San Francisco", nil, "Rimac", "Lima", `{"misa":["08:00"]}`, nil, nil, nil, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), models.Parish{
		Name:     "San Francisco",
		District: strPtr("Rimac"),
		City:     "Lima",
		Schedule: json.RawMessage(`{"misa":["08:00"]}`),
		Active:   true,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	boom := errors.New("db is down")
	mock.ExpectExec(`INSERT INTO franciscan_prayers`).WillReturnError(boom)

	err := store.Create(context.Background(), models.Prayer{Title: "Paz", Body: "x"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "db error")
}

func TestCreate_UnexpectedRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	mock.ExpectExec(`INSERT INTO franciscan_prayers`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Create(context.Background(), models.Prayer{Title: "Paz", Body: "x"})
	require.EqualError(t, err, "unexpected rows affected: 0")
}

func TestCreate_RowsAffectedError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	mock.ExpectExec(`INSERT INTO franciscan_prayers`).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	err := store.Create(context.Background(), models.Prayer{Title: "Paz", Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows affected error")
}

func TestUpdate_CommitsSingleRow(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Lessons())

	q := regexp.QuoteMeta(`UPDATE lecciones_catecismo SET titulo = $1, subtitulo = $2, nivel = $3, tema = $4, ` +
		`contenido = $5, resumen = $6, cita_biblica = $7, orden = $8, activo = $9, updated_at = $10 WHERE id = $11`)

	mock.ExpectBegin()
	mock.ExpectExec(q).
		WithArgs("Uno", nil, "Confirmacion", "Fe", pq.StringArray{"a"}, nil, nil, int64(3), true, ts, "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), "l1", models.Lesson{
		Title:     "Uno",
		Level:     models.LevelConfirmation,
		Topic:     strPtr("Fe"),
		Content:   []string{"a"},
		Order:     3,
		Active:    true,
		UpdatedAt: ts,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRowRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE franciscan_prayers SET .* WHERE id = \$4`).
		WithArgs("Paz", "x", nil, "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Update(context.Background(), "gone", models.Prayer{Title: "Paz", Body: "x"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ManyRowsRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE franciscan_prayers`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	err := store.Update(context.Background(), "p1", models.Prayer{Title: "Paz", Body: "x"})
	require.EqualError(t, err, "unexpected rows affected: 2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, Prayers())

	boom := errors.New("begin failed")
	mock.ExpectBegin().WillReturnError(boom)

	err := store.Update(context.Background(), "p1", models.Prayer{Title: "Paz"})
	require.ErrorIs(t, err, boom)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  string
	}{
		{name: "deleted", affected: 1},
		{name: "already gone", affected: 0},
		{name: "many rows", affected: 3, wantErr: "unexpected rows affected: 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			store := NewPostgresStore(db, News())

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM noticias_parroquia WHERE id = $1`)).
				WithArgs("n1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			if tt.wantErr == "" {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := store.Delete(context.Background(), "n1")
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tt.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDelete_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostgresStore(db, News())

	boom := errors.New("fk violation")
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM noticias_parroquia`).WillReturnError(boom)
	mock.ExpectRollback()

	err := store.Delete(context.Background(), "n1")
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
