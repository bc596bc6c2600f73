package editor

// IsLive reports whether the buffer can still be read and mutated.
//
// Probing is fail-closed: a nil handle, a disposed buffer, or a panic
// while probing all count as not live. Callers check this immediately
// before every read or mutation that follows an asynchronous boundary,
// because the host may tear the buffer down between scheduling and
// execution of a deferred step.
func IsLive(b Buffer) (live bool) {
	if b == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			live = false
		}
	}()
	return !b.Disposed()
}
