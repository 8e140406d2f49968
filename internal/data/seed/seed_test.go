package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	assert.Len(t, catalog.Categories, 10)
	assert.Len(t, catalog.Items, 43)

	featured := 0
	for _, item := range catalog.Items {
		assert.NotEmpty(t, item.Category, item.Name)
		assert.Positive(t, item.Price, item.Name)
		if item.Featured {
			featured++
		}
	}
	assert.Positive(t, featured)
}

func TestParse_UnknownCategory(t *testing.T) {
	_, err := Parse([]byte(`
categories:
  - name: Pizza
    slug: pizza
items:
  - name: Sushi
    category: japanese
    price: 10
`))
	assert.ErrorContains(t, err, "unknown category")
}

func TestApply_UpsertsCategoriesAndItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	catalog := &Catalog{
		Categories: []Category{{Name: "Pizza", Slug: "pizza"}},
		Items: []Item{
			{Name: "Margherita Pizza", Category: "pizza", Price: 299},
			{Name: "Pepperoni Pizza", Category: "pizza", Price: 349},
		},
	}
	categoryID := uuid.New()
	existingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(pgxmock.AnyArg(), "Pizza", "pizza", "", "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow(categoryID, true))
	mock.ExpectQuery("SELECT id FROM menu_items").WithArgs("Margherita Pizza").WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO menu_items").
		WithArgs(pgxmock.AnyArg(), "Margherita Pizza", "", pgxmock.AnyArg(), pgxmock.AnyArg(),
			false, 0.0, false, "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT id FROM menu_items").WithArgs("Pepperoni Pizza").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(existingID))
	mock.ExpectExec("UPDATE menu_items").
		WithArgs(existingID, "", pgxmock.AnyArg(), pgxmock.AnyArg(), false, 0.0, false, "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := Apply(context.Background(), mock, catalog, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, &Result{CategoriesCreated: 1, ItemsCreated: 1, ItemsUpdated: 1}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(pgxmock.AnyArg(), "Pizza", "pizza", "", "", pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = Apply(context.Background(), mock, &Catalog{Categories: []Category{{Name: "Pizza", Slug: "pizza"}}}, zap.NewNop())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
