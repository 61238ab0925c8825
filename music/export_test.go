package music

import "time"

func SetRecorderClock(r *Recorder, now func() time.Time) {
	r.now = now
}
