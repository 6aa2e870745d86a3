package ticket

import (
	"context"
	"database/sql"
	"fmt"
)

const selectAllTickets = `
SELECT id, user_name, issue, priority, status, created_at, resolved_at
FROM tickets
ORDER BY id;
`

const countByStatus = `
SELECT status, COUNT(*)
FROM tickets
GROUP BY status;
`

// listAll and summary use no bind parameters, so both SQL backends share them.
func listAll(ctx context.Context, db *sql.DB) ([]Ticket, error) {
	rows, err := db.QueryContext(ctx, selectAllTickets)
	if err != nil {
		return nil, fmt.Errorf("ticket store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]Ticket, 0)
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.UserName, &t.Issue, &t.Priority, &t.Status, &t.CreatedAt, &t.ResolvedAt); err != nil {
			return nil, fmt.Errorf("ticket store: list scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ticket store: list: %w", err)
	}
	return out, nil
}

func summary(ctx context.Context, db *sql.DB) (Summary, error) {
	rows, err := db.QueryContext(ctx, countByStatus)
	if err != nil {
		return Summary{}, fmt.Errorf("ticket store: summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sum Summary
	for rows.Next() {
		var (
			status Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return Summary{}, fmt.Errorf("ticket store: summary scan: %w", err)
		}
		switch status {
		case StatusOpen:
			sum.Open = n
		case StatusClosed:
			sum.Closed = n
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("ticket store: summary: %w", err)
	}
	return sum, nil
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ticket store: close: %w", err)
	}
	return n == 1, nil
}
