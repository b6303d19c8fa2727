package jobs

import (
	"context"
	"time"

	"gearshare-booking-engine/internal/logger"
)

// ExpireLapsedReservations marks calendared reservations whose end date
// has passed. This is the bulk form of the ledger's Expire, run nightly.
func (jr *JobRunner) ExpireLapsedReservations() {
	jr.runWithRecovery("ExpireLapsedReservations", func() {
		ctx := context.Background()

		query := `
			UPDATE reservations
			SET is_expired = true
			WHERE is_calendared = true
			  AND is_expired = false
			  AND date_ended < $1
			RETURNING item_id, renter_id, date_started, date_ended
		`
		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to expire lapsed reservations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var itemID, renterID int32
			var started, ended time.Time
			if err := rows.Scan(&itemID, &renterID, &started, &ended); err != nil {
				logger.Error("Failed to scan expired reservation", "error", err)
				continue
			}
			count++
			logger.Debug("Expired reservation",
				"item_id", itemID, "renter_id", renterID,
				"date_started", started.Format("2006-01-02"),
				"date_ended", ended.Format("2006-01-02"))
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired reservations", "error", err)
			return
		}
		logger.Info("Marked reservations as expired", "count", count)
	})
}

// ReapStaleLocks clears item locks older than the configured TTL. A
// crashed checkout must not wedge its item forever; the prior holder is
// logged for audit.
func (jr *JobRunner) ReapStaleLocks() {
	jr.runWithRecovery("ReapStaleLocks", func() {
		ctx := context.Background()

		cutoff := time.Now().Add(-jr.config.Lock.TTL())
		query := `
			UPDATE items
			SET is_locked = false, locked_by = NULL, locked_at = NULL
			WHERE is_locked = true
			  AND locked_at < $1
			RETURNING id, locked_by, locked_at
		`
		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to reap stale locks", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var itemID int32
			var priorHolder string
			var lockedAt time.Time
			if err := rows.Scan(&itemID, &priorHolder, &lockedAt); err != nil {
				logger.Error("Failed to scan reaped lock", "error", err)
				continue
			}
			count++
			logger.Warn("Reaped stale item lock",
				"item_id", itemID, "prior_holder", priorHolder, "locked_at", lockedAt)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating reaped locks", "error", err)
			return
		}
		logger.Info("Reaped stale item locks", "count", count)
	})
}
