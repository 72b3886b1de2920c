package pool

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the calling goroutine's numeric ID from its own
// stack trace header ("goroutine 123 [running]: ..."). Go deliberately
// exposes no public API for this; parsing runtime.Stack's header is the
// standard workaround, used only by the opt-in self-wait guard — nothing
// on the hot submit/dispatch path depends on it.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]

	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
