package feed

import (
	"log"
	"time"
)

// StartLoop runs the synchronizer on a fixed interval in a background
// goroutine. A zero or negative interval disables scheduling. Failed runs
// are logged and retried on the next tick only.
func StartLoop(s *Synchronizer, every time.Duration) {
	if every <= 0 {
		return
	}
	go func() {
		for {
			time.Sleep(every)

			start := time.Now()
			rep := s.Run()
			if rep.Success {
				log.Printf("[feed] scheduled sync ok: %d categories, %d products in %s",
					rep.Categories, rep.Products, time.Since(start))
				continue
			}
			log.Printf("[feed] scheduled sync failed (%s): %s", rep.ErrorKind, rep.Error)
		}
	}()
}
