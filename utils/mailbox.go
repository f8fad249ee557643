package utils

import "fmt"

// MailBox carries messages between worker goroutines that each own one
// shard of the mesh. The usage pattern is post-all / deliver / receive:
// every worker posts everything it owes its neighbors, delivers, then
// drains its own channel. Nothing blocks on an individual message, so
// communication overlaps with local work.
type MailBox[T any] struct {
	NP           int
	MessageChans []chan []T    // one per worker
	PostMsgQs    []map[int][]T // per worker, keyed by target worker
}

func NewMailBox[T any](NP int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan []T, NP),
		PostMsgQs:    make([]map[int][]T, NP),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan []T, NP) // worst case is all-to-all
		mb.PostMsgQs[n] = make(map[int][]T)
	}
	return mb
}

func (mb *MailBox[T]) PostMessage(myWorker, targetWorker int, msg T) {
	if targetWorker < 0 || targetWorker > mb.NP-1 {
		panic(fmt.Sprintf("target worker %d out of bounds", targetWorker))
	}
	mb.PostMsgQs[myWorker][targetWorker] = append(mb.PostMsgQs[myWorker][targetWorker], msg)
}

// DeliverMyMessages pushes every queued batch onto the target worker
// channels. Safe to call with nothing queued.
func (mb *MailBox[T]) DeliverMyMessages(myWorker int) {
	for targetWorker, msgs := range mb.PostMsgQs[myWorker] {
		if len(msgs) != 0 {
			mb.MessageChans[targetWorker] <- msgs
		}
		delete(mb.PostMsgQs[myWorker], targetWorker)
	}
}

// ReceiveMyMessages drains exactly nSenders batches destined for
// myWorker, blocking until all have arrived.
func (mb *MailBox[T]) ReceiveMyMessages(myWorker, nSenders int) (msgs []T) {
	for i := 0; i < nSenders; i++ {
		batch := <-mb.MessageChans[myWorker]
		msgs = append(msgs, batch...)
	}
	return
}
