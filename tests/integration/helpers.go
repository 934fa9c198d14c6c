package integration

import (
	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/sysmem"
)

// event is the payload placed into arenas across this suite.
type event struct {
	Seq     int64
	Kind    int32
	Payload [24]byte
}

func makeEvent(seq int64) event {
	e := event{Seq: seq, Kind: int32(seq % 4)}
	for i := range e.Payload {
		e.Payload[i] = byte(seq) + byte(i)
	}
	return e
}

// Providers exercised by every lifecycle test
var providers = []struct {
	name string
	prov alloc.Provider
}{
	{"heap", alloc.HeapProvider{}},
	{"sysmem", sysmem.New()},
}
