package levels

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const findQ = `^SELECT\s+id,\s*name\s+FROM\s+levels\s+WHERE\s+name\s*=\s*\$1$`

func TestFindByName(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(findQ).WithArgs("INSTRUCTOR").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(5), "INSTRUCTOR"))
	level, err := repo.FindByName(ctx, models.LevelInstructor)
	require.NoError(t, err)
	assert.Equal(t, &models.Level{ID: 5, Name: models.LevelInstructor}, level)

	mock.ExpectQuery(findQ).WithArgs("ADMIN").WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByName(ctx, models.LevelAdmin)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(findQ).WithArgs("ADMIN").WillReturnError(errors.New("db err"))
	_, err = repo.FindByName(ctx, models.LevelAdmin)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "db error: db err")

	require.NoError(t, mock.ExpectationsWereMet())
}
