package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/orphanage-admin/internal/domain"
	"github.com/spec-kit/orphanage-admin/internal/repository"
)

func newStaffRepo(t *testing.T) (pgxmock.PgxPoolIface, repository.StaffRepository) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool, repository.NewStaffRepository(mockPool)
}

func TestStaffRepository_Create(t *testing.T) {
	t.Run("Should pass a nil phone number through", func(t *testing.T) {
		mockPool, repo := newStaffRepo(t)
		now := time.Now()

		mockPool.ExpectQuery("INSERT INTO staff_profiles").
			WithArgs(int64(2), "B", "b@x.com", (*string)(nil), "Caregiver").
			WillReturnRows(mockPool.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(10), now, now))

		profile := &domain.StaffProfile{UserID: 2, Name: "B", Email: "b@x.com", Position: "Caregiver"}
		require.NoError(t, repo.Create(context.Background(), profile))
		assert.Equal(t, int64(10), profile.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStaffRepository_GetByUserID(t *testing.T) {
	t.Run("Should map the phone number pointer", func(t *testing.T) {
		mockPool, repo := newStaffRepo(t)
		now := time.Now()
		phone := "555-0100"

		mockPool.ExpectQuery("SELECT (.+) FROM staff_profiles WHERE user_id=\\$1").
			WithArgs(int64(2)).
			WillReturnRows(mockPool.NewRows([]string{"id", "user_id", "name", "email", "phone_number", "position", "created_at", "updated_at"}).
				AddRow(int64(10), int64(2), "B", "b@x.com", &phone, "Caregiver", now, now))

		profile, err := repo.GetByUserID(context.Background(), 2)
		require.NoError(t, err)
		require.NotNil(t, profile.PhoneNumber)
		assert.Equal(t, "555-0100", *profile.PhoneNumber)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should propagate pgx.ErrNoRows when the user has no profile", func(t *testing.T) {
		mockPool, repo := newStaffRepo(t)

		mockPool.ExpectQuery("SELECT (.+) FROM staff_profiles WHERE user_id=\\$1").
			WithArgs(int64(7)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByUserID(context.Background(), 7)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStaffRepository_DeleteByUserID(t *testing.T) {
	t.Run("Should not error when the user has no profile", func(t *testing.T) {
		mockPool, repo := newStaffRepo(t)

		mockPool.ExpectExec("DELETE FROM staff_profiles WHERE user_id=\\$1").
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.NoError(t, repo.DeleteByUserID(context.Background(), 7))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStaffRepository_Delete(t *testing.T) {
	t.Run("Should translate zero affected rows to pgx.ErrNoRows", func(t *testing.T) {
		mockPool, repo := newStaffRepo(t)

		mockPool.ExpectExec("DELETE FROM staff_profiles WHERE id=\\$1").
			WithArgs(int64(99)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
