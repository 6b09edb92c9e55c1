package events_test

import (
	"testing"

	"github.com/ardanlabs/powchain/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out node events to subscribers.")
	{
		evts := events.New()

		ch1 := evts.Acquire("sub1")
		ch2 := evts.Acquire("sub2")
		if evts.Acquire("sub1") != ch1 {
			t.Fatalf("\t%s\tShould get the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould get the same channel for the same id.", success)

		evts.Send("block mined")

		for i, ch := range []<-chan string{ch1, ch2} {
			if msg := <-ch; msg != "block mined" {
				t.Fatalf("\t%s\tSubscriber %d should receive the event, got %q.", failed, i, msg)
			}
		}
		t.Logf("\t%s\tShould deliver the event to every subscriber.", success)

		if err := evts.Release("sub1"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a subscriber: %v", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close the channel on release.", failed)
		}
		if err := evts.Release("sub1"); err == nil {
			t.Fatalf("\t%s\tShould not release an unknown subscriber.", failed)
		}
		t.Logf("\t%s\tShould be able to release a subscriber.", success)

		for i := 0; i < 500; i++ {
			evts.Send("flood")
		}
		t.Logf("\t%s\tShould not block on a slow subscriber.", success)

		evts.Shutdown()
		if evts.Count() != 0 {
			t.Fatalf("\t%s\tShould remove all subscribers on shutdown.", failed)
		}
		t.Logf("\t%s\tShould remove all subscribers on shutdown.", success)
	}
}
