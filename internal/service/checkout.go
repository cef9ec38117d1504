package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/model"
)

// Checkout rule violations about the selection. They are always wrapped in a *CheckoutError.
var (
	ErrNoCourseSelected   = errors.New("no course selected")
	ErrDuplicateSelection = errors.New("duplicate course schedules selected")
	ErrSelectionNotFound  = errors.New("course schedules not found")
	ErrAlreadyPurchased   = errors.New("course schedules already purchased")
	ErrScheduleFull       = errors.New("course schedules are full")
)

// ErrPaymentMethodUnavailable is returned bare: it concerns no selected schedule.
var ErrPaymentMethodUnavailable = errors.New("payment method unavailable")

// CheckoutError reports which selections broke a checkout rule.
// IDs is set for duplicate and missing selections; Conflicts for purchased and full ones.
type CheckoutError struct {
	Kind      error
	IDs       []int
	Conflicts []model.CourseConflict
}

func (e *CheckoutError) Error() string {
	switch {
	case len(e.IDs) > 0:
		return fmt.Sprintf("%v: %v", e.Kind, e.IDs)
	case len(e.Conflicts) > 0:
		return fmt.Sprintf("%v: %d item(s)", e.Kind, len(e.Conflicts))
	}
	return e.Kind.Error()
}

func (e *CheckoutError) Unwrap() error {
	return e.Kind
}

// FormatInvoiceNumber renders prefix plus a five-digit zero-padded sequence, e.g. SOU00001.
func FormatInvoiceNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%05d", prefix, seq)
}

// findDuplicates returns each ID that occurs more than once, ascending.
func findDuplicates(ids []int) []int {
	seen := make(map[int]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	var dups []int
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Ints(dups)
	return dups
}

// validateSelection checks the request shape before any database work.
func validateSelection(ids []int) error {
	if len(ids) == 0 {
		return &CheckoutError{Kind: ErrNoCourseSelected}
	}
	if dups := findDuplicates(ids); len(dups) > 0 {
		return &CheckoutError{Kind: ErrDuplicateSelection, IDs: dups}
	}
	return nil
}

// evaluateLocked applies the availability rules to the locked rows, in order:
// missing selections, already-owned selections, then sold-out or inactive ones.
func evaluateLocked(requested []int, rows []model.CourseScheduleDetail, owned map[int]bool) error {
	found := make(map[int]bool, len(rows))
	for _, r := range rows {
		found[r.CourseScheduleID] = true
	}

	var missing []int
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &CheckoutError{Kind: ErrSelectionNotFound, IDs: missing}
	}

	var purchased, full []model.CourseConflict
	for _, r := range rows {
		conflict := model.CourseConflict{CourseScheduleID: r.CourseScheduleID, CourseName: r.Name}
		if owned[r.CourseScheduleID] {
			purchased = append(purchased, conflict)
			continue
		}
		if r.AvailableSlot <= 0 || r.Status != model.StatusActive {
			full = append(full, conflict)
		}
	}
	if len(purchased) > 0 {
		return &CheckoutError{Kind: ErrAlreadyPurchased, Conflicts: purchased}
	}
	if len(full) > 0 {
		return &CheckoutError{Kind: ErrScheduleFull, Conflicts: full}
	}
	return nil
}

// sumPrices totals course prices.
func sumPrices(rows []model.CourseScheduleDetail) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Price)
	}
	return total
}
