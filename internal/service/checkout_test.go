package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(id int, name, price string, slot int, status model.Status) model.CourseScheduleDetail {
	return model.CourseScheduleDetail{
		CourseScheduleID: id,
		Name:             name,
		Price:            decimal.RequireFromString(price),
		AvailableSlot:    slot,
		Status:           status,
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "SOU00001", FormatInvoiceNumber("SOU", 1))
	assert.Equal(t, "SOU00042", FormatInvoiceNumber("SOU", 42))
	assert.Equal(t, "SOU99999", FormatInvoiceNumber("SOU", 99999))
	assert.Equal(t, "SOU123456", FormatInvoiceNumber("SOU", 123456))
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int
		wantKind error
		wantIDs  []int
	}{
		{"empty", nil, ErrNoCourseSelected, nil},
		{"unique", []int{1, 2, 3}, nil, nil},
		{"duplicates", []int{4, 2, 4, 9, 2, 2}, ErrDuplicateSelection, []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSelection(tt.ids)
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)

			var ce *CheckoutError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.wantIDs, ce.IDs)
		})
	}
}

func TestEvaluateLocked(t *testing.T) {
	rows := []model.CourseScheduleDetail{
		detail(1, "Tom Yum", "45000", 3, model.StatusActive),
		detail(2, "Sushi", "60000", 0, model.StatusInactive),
		detail(3, "Ramen", "50000", 2, model.StatusInactive),
		detail(4, "Pasta", "55000", 1, model.StatusActive),
	}

	t.Run("missing ids reported first", func(t *testing.T) {
		err := evaluateLocked([]int{1, 99, 2, 50}, rows[:2], map[int]bool{1: true})
		var ce *CheckoutError
		require.True(t, errors.As(err, &ce))
		assert.ErrorIs(t, err, ErrSelectionNotFound)
		assert.Equal(t, []int{50, 99}, ce.IDs)
	})

	t.Run("already purchased before full", func(t *testing.T) {
		err := evaluateLocked([]int{1, 2}, rows[:2], map[int]bool{1: true})
		var ce *CheckoutError
		require.True(t, errors.As(err, &ce))
		assert.ErrorIs(t, err, ErrAlreadyPurchased)
		assert.Equal(t, []model.CourseConflict{{CourseScheduleID: 1, CourseName: "Tom Yum"}}, ce.Conflicts)
	})

	t.Run("sold out or inactive is full", func(t *testing.T) {
		err := evaluateLocked([]int{1, 2, 3}, rows[:3], nil)
		var ce *CheckoutError
		require.True(t, errors.As(err, &ce))
		assert.ErrorIs(t, err, ErrScheduleFull)
		assert.Equal(t, []model.CourseConflict{
			{CourseScheduleID: 2, CourseName: "Sushi"},
			{CourseScheduleID: 3, CourseName: "Ramen"},
		}, ce.Conflicts)
	})

	t.Run("purchasable", func(t *testing.T) {
		assert.NoError(t, evaluateLocked([]int{4, 1}, []model.CourseScheduleDetail{rows[0], rows[3]}, map[int]bool{}))
	})
}

func TestSumPrices(t *testing.T) {
	rows := []model.CourseScheduleDetail{
		detail(1, "A", "15000.10", 1, model.StatusActive),
		detail(2, "B", "0.20", 1, model.StatusActive),
		detail(3, "C", "20000", 1, model.StatusActive),
	}
	assert.True(t, decimal.RequireFromString("35000.30").Equal(sumPrices(rows)))
	assert.True(t, sumPrices(nil).IsZero())
}

func TestCheckoutError_Message(t *testing.T) {
	assert.Equal(t, "duplicate course schedules selected: [3]",
		(&CheckoutError{Kind: ErrDuplicateSelection, IDs: []int{3}}).Error())
	assert.Equal(t, "course schedules are full: 2 item(s)",
		(&CheckoutError{Kind: ErrScheduleFull, Conflicts: make([]model.CourseConflict, 2)}).Error())
	assert.Equal(t, "no course selected", (&CheckoutError{Kind: ErrNoCourseSelected}).Error())
}

func TestCanRead(t *testing.T) {
	admin := &Claims{UserID: 1, Role: model.RoleAdmin}
	user := &Claims{UserID: 7, Role: model.RoleUser}

	assert.True(t, canRead(admin, 7))
	assert.True(t, canRead(user, 7))
	assert.False(t, canRead(user, 8))
}
