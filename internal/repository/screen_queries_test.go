package repository

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*DisplayStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDisplayStore(db), mock
}

var screenCols = []string{
	"id", "business_id", "business_name", "name", "location", "animation_type",
	"animation_duration", "language_code", "font_family", "primary_color",
	"background_style", "background_color", "background_image_url", "logo_url",
	"template_id", "frame_type", "ticker_text", "ticker_style",
}

func screenRow() []driver.Value {
	return []driver.Value{
		int64(7), int64(10), "Cafe Uno", "Lobby", nil, "slide",
		int64(800), "tr", nil, nil,
		nil, nil, nil, nil,
		int64(5), nil, nil, nil,
	}
}

func TestResolveScreen_SlugWinsOverToken(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.public_slug = \\?").
		WithArgs("lobby").
		WillReturnRows(sqlmock.NewRows(screenCols).AddRow(screenRow()...))

	s, err := store.ResolveScreen(context.Background(), "lobby")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.ID)
	assert.Equal(t, uint64(10), s.BusinessID)
	assert.Equal(t, "slide", s.AnimationType.String)
	assert.Equal(t, int64(5), s.TemplateID.Int64)
	assert.False(t, s.Location.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveScreen_FallsBackToToken(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.public_slug = \\?").
		WithArgs("tok-123").
		WillReturnRows(sqlmock.NewRows(screenCols))
	mock.ExpectQuery("WHERE s.public_token = \\?").
		WithArgs("tok-123").
		WillReturnRows(sqlmock.NewRows(screenCols).AddRow(screenRow()...))

	s, err := store.ResolveScreen(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveScreen_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.public_slug = \\?").
		WillReturnRows(sqlmock.NewRows(screenCols))
	mock.ExpectQuery("WHERE s.public_token = \\?").
		WillReturnRows(sqlmock.NewRows(screenCols))

	_, err := store.ResolveScreen(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrScreenNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreenIDByPublicID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT s.id").
		WithArgs("lobby").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.ScreenIDByPublicID(context.Background(), "lobby")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveStreamTarget_PrefersSlug(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.broadcast_code = \\?").
		WithArgs("ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"public_slug", "public_token"}).
			AddRow("lobby-slug", "tok-123"))

	target, err := store.ResolveStreamTarget(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "lobby-slug", target)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveStreamTarget_TokenWhenSlugMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.broadcast_code = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"public_slug", "public_token"}).
			AddRow(nil, "tok-123"))

	target, err := store.ResolveStreamTarget(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", target)
}

func TestResolveStreamTarget_NoIdentifiersAtAll(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("WHERE s.broadcast_code = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"public_slug", "public_token"}).
			AddRow(nil, nil))

	_, err := store.ResolveStreamTarget(context.Background(), "ABC123")
	assert.ErrorIs(t, err, ErrScreenNotFound)
}

func TestDefaultLanguageCode_UnsetIsNotAnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT code FROM languages").
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	code, err := store.DefaultLanguageCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", code)
}
