//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCourseSchedule creates a purchasable course schedule with the given seats.
func seedCourseSchedule(t *testing.T, slots int) int {
	t.Helper()
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var categoryID, courseID, scheduleID, msID int
	require.NoError(t, conn.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, "Rebutan "+suffix,
	).Scan(&categoryID))
	require.NoError(t, conn.QueryRow(ctx,
		`INSERT INTO menu_courses (name, price, category_id) VALUES ($1, 50000, $2) RETURNING id`,
		"Kursus Rebutan "+suffix, categoryID,
	).Scan(&courseID))
	require.NoError(t, conn.QueryRow(ctx,
		`INSERT INTO schedules (schedule_date) VALUES ($1) RETURNING id`,
		time.Now().Add(45*24*time.Hour).UTC(),
	).Scan(&scheduleID))
	require.NoError(t, conn.QueryRow(ctx,
		`INSERT INTO menu_course_schedules (menu_course_id, schedule_id, available_slot)
		 VALUES ($1, $2, $3) RETURNING id`,
		courseID, scheduleID, slots,
	).Scan(&msID))
	return msID
}

type checkoutOutcome struct {
	status int
	body   []byte
}

func TestConcurrentCheckoutNeverOversells(t *testing.T) {
	const (
		seats  = 2
		buyers = 5
	)
	msID := seedCourseSchedule(t, seats)

	tokens := make([]string, buyers)
	for i := range tokens {
		email := fmt.Sprintf("e2e_buyer%d_%s@example.com", i, suffix)
		createConfirmedUser(t, email)
		tokens[i] = login(t, email, userPass)
	}

	// require must not run off the test goroutine; outcomes are checked after Wait.
	outcomes := make([]checkoutOutcome, buyers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			raw, _ := json.Marshal(model.CheckoutRequest{CourseScheduleIDs: []int{msID}})
			req, err := http.NewRequest(http.MethodPost, baseURL+"/invoices", bytes.NewReader(raw))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			<-start
			resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			outcomes[i] = checkoutOutcome{status: resp.StatusCode, body: body}
		}(i, token)
	}
	close(start)
	wg.Wait()

	invoices := make(map[string]bool)
	full := 0
	for i, o := range outcomes {
		var env envelope
		require.NoError(t, json.Unmarshal(o.body, &env), "buyer %d: status %d", i, o.status)

		switch o.status {
		case http.StatusCreated:
			var res model.CheckoutResult
			require.NoError(t, json.Unmarshal(env.Data, &res))
			assert.False(t, invoices[res.NoInvoice], "invoice number %s issued twice", res.NoInvoice)
			invoices[res.NoInvoice] = true
		case http.StatusConflict:
			require.NotNil(t, env.Error)
			assert.Equal(t, "SCHEDULE_FULL", env.Error.Code)
			full++
		default:
			t.Errorf("buyer %d: unexpected status %d: %s", i, o.status, o.body)
		}
	}
	assert.Len(t, invoices, seats)
	assert.Equal(t, buyers-seats, full)

	resp := do(t, http.MethodGet, fmt.Sprintf("/course-schedules/%d", msID), nil, "", "")
	var out struct {
		CourseSchedule model.CourseSchedule `json:"course_schedule"`
	}
	decodeData(t, resp, http.StatusOK, &out)
	assert.Equal(t, 0, out.CourseSchedule.AvailableSlot)
	assert.Equal(t, model.StatusInactive, out.CourseSchedule.Status)
}
