package analytics

import (
	"github.com/spectra-health/spectra/internal/logger"
)

// Guard wraps a sink so that a panic inside it is logged and swallowed
func Guard(sink Sink, log *logger.Logger) Sink {
	if sink == nil {
		return Nop
	}
	if log == nil {
		log = logger.Nop()
	}
	return SinkFunc(func(name string, payload Payload) {
		defer func() {
			if r := recover(); r != nil {
				log.WarnWithFields("analytics sink panicked", []logger.Field{
					logger.Event(name),
					logger.F("panic", r),
				})
			}
		}()
		sink.Record(name, payload)
	})
}

// Multi fans every event out to all sinks. Each sink is guarded separately
// so one failing sink does not starve the others.
func Multi(log *logger.Logger, sinks ...Sink) Sink {
	guarded := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			guarded = append(guarded, Guard(s, log))
		}
	}
	switch len(guarded) {
	case 0:
		return Nop
	case 1:
		return guarded[0]
	}
	return SinkFunc(func(name string, payload Payload) {
		for _, s := range guarded {
			s.Record(name, payload)
		}
	})
}
