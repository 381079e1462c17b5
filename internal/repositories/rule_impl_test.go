package repositories

import (
	"regexp"
	"testing"

	"credittransfer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func ruleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "country", "source_class", "dest_class", "priority",
		"allowed", "error_code", "error_message", "is_active",
	})
}

func TestFindRule_QueriesOnlyActiveRules(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRuleStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "transfer_rules" WHERE country = $1 AND source_class = $2 AND dest_class = $3 AND is_active = $4`)).
		WithArgs("OM", "Customer", models.WildcardDestination, true, 1).
		WillReturnRows(ruleRows().AddRow(1, "OM", "Customer", "*", 10, false, 30, "not allowed", true))

	rule, err := store.FindRule("OM", "Customer", models.WildcardDestination)

	require.NoError(t, err)
	assert.False(t, rule.Allowed)
	assert.Equal(t, 30, rule.ErrorCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRule_NoActiveMatchIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRuleStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`AND is_active = $4`)).
		WithArgs("OM", "Customer", "Customer", true, 1).
		WillReturnRows(ruleRows())

	_, err := store.FindRule("OM", "Customer", "Customer")

	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveRules_FiltersInactiveAndOrdersByPriority(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRuleStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "transfer_rules" WHERE country = $1 AND is_active = $2 ORDER BY priority asc`)).
		WithArgs("OM", true).
		WillReturnRows(ruleRows().
			AddRow(2, "OM", "Customer", "*", 5, false, 30, "not allowed", true).
			AddRow(1, "OM", "Customer", "Pos", 10, true, 0, "", true))

	active, err := store.GetActiveRules("OM")

	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 5, active[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate_UnknownRuleIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRuleStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transfer_rules" SET`)).
		WithArgs(false, sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Deactivate(99)

	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
