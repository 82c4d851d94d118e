package server

import (
	"log"
	"time"
)

// StartSweeper launches the periodic reclamation of stale rooms. It returns
// a stop function. The sweep interval is fixed and independent of room
// activity; only rooms strictly older than the retention threshold are
// removed, together with all participant state they own.
func (s *Server) StartSweeper() func() {
	interval := time.Duration(s.cfg.SweepIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				s.sweepStaleRooms(s.now())
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

func (s *Server) sweepStaleRooms(now time.Time) {
	cutoff := now.Add(-time.Duration(s.cfg.RoomRetentionHours) * time.Hour)
	for _, code := range s.store.StaleRooms(cutoff) {
		log.Printf("sweeping stale room room_code=%s", code)
		s.closeRoom(code)
	}
}
