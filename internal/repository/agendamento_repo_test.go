package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAgendamentoRepo_ExisteDuplicado(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgendamentoRepo(db)
	inicio := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "agendamentos" WHERE processo = \$1 AND data_hora = \$2`).
		WithArgs("123", inicio).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	existe, err := repo.ExisteDuplicado(context.Background(), "123", inicio)
	require.NoError(t, err)
	assert.True(t, existe)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendamentoRepo_CountComBuscaECoordenadoria(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgendamentoRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "agendamentos" WHERE .*municipe ILIKE \$1 OR processo ILIKE \$2 OR cpf ILIKE \$3.* AND coordenadoria_id = \$4`).
		WithArgs("%silva%", "%silva%", "%silva%", "coord-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(context.Background(), AgendamentoFiltro{Busca: " silva ", CoordenadoriaID: "coord-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendamentoRepo_DeleteInexistente(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgendamentoRepo(db)

	mock.ExpectExec(`DELETE FROM "agendamentos" WHERE id = \$1`).
		WithArgs("nao-existe").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "nao-existe")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordenadoriaRepo_GetBySigla(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoordenadoriaRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "coordenadorias" WHERE sigla = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sigla", "status"}).AddRow("c-1", "GTEC", true))

	c, err := repo.GetBySigla(context.Background(), "GTEC")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "GTEC", c.Sigla)
}

func TestCoordenadoriaRepo_GetBySigla_NaoEncontrada(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoordenadoriaRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "coordenadorias" WHERE sigla = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sigla"}))

	_, err := repo.GetBySigla(context.Background(), "XPTO")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUsuarioRepo_CountComBuscaEStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsuarioRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "usuarios" WHERE .*nome ILIKE \$1 OR login ILIKE \$2 OR email ILIKE \$3.* AND status = \$4 AND permissao = \$5`).
		WithArgs("%ana%", "%ana%", "%ana%", false, "TEC").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	inativo := false
	n, err := repo.Count(context.Background(), UsuarioFiltro{Busca: " ana ", Status: &inativo, Permissao: "TEC"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
