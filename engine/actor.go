package engine

import "github.com/decred/ledgerengine/ledger"

// RejectionSink is the optional diagnostic stream spec.md §7 allows an
// implementation to expose. When set on a Dispatcher, every rejected
// event is reported here in addition to the default silent-rejection
// behavior; the snapshot output is unaffected either way.
type RejectionSink interface {
	Reject(ev ledger.Event, reason error)
}

// actorMsg is the tagged union a WalletActor consumes from its inbox: an
// ordinary event, or a terminal flush request.
type actorMsg struct {
	event ledger.Event
	flush *flushSignal
}

// flushSignal carries the channel a WalletActor replies on once it has
// drained its inbox and produced its final snapshots.
type flushSignal struct {
	resultCh chan map[ledger.ClientID]ledger.Snapshot
}

// WalletActor owns a disjoint subset of clients and serializes events to
// its Wallets via its inbound queue. It is single-threaded internally: no
// locks are required on its owned Wallets, because the queue is the sole
// synchronization primitive (spec.md §4.4, §5).
type WalletActor struct {
	id              int
	inbox           chan actorMsg
	wallets         map[ledger.ClientID]*ledger.Wallet
	strictAvailable bool
	rejections      RejectionSink
}

func newWalletActor(id, queueCapacity int, strictAvailable bool, sink RejectionSink) *WalletActor {
	return &WalletActor{
		id:              id,
		inbox:           make(chan actorMsg, queueCapacity),
		wallets:         make(map[ledger.ClientID]*ledger.Wallet),
		strictAvailable: strictAvailable,
		rejections:      sink,
	}
}

// run drains the actor's inbox in FIFO order until it receives a flush
// request, at which point it replies with its owned wallets' snapshots
// and returns.
func (a *WalletActor) run() {
	for msg := range a.inbox {
		if msg.flush != nil {
			msg.flush.resultCh <- a.snapshotAll()
			close(msg.flush.resultCh)
			return
		}
		a.process(msg.event)
	}
}

func (a *WalletActor) process(ev ledger.Event) {
	w, ok := a.wallets[ev.Client]
	if !ok {
		w = ledger.NewWallet(ev.Client, a.strictAvailable)
		a.wallets[ev.Client] = w
	}

	outcome := w.Apply(ev)
	if outcome.Accepted {
		log.Tracef("shard %d: applied %v tx=%d client=%d", a.id, ev.Kind, ev.Tx, ev.Client)
		return
	}

	log.Debugf("shard %d: rejected %v tx=%d client=%d: %v", a.id, ev.Kind, ev.Tx, ev.Client, outcome.Reason)
	if a.rejections != nil {
		a.rejections.Reject(ev, outcome.Reason)
	}
}

func (a *WalletActor) snapshotAll() map[ledger.ClientID]ledger.Snapshot {
	out := make(map[ledger.ClientID]ledger.Snapshot, len(a.wallets))
	for id, w := range a.wallets {
		out[id] = w.Snapshot()
	}
	return out
}

// submit enqueues ev on the actor's inbox, blocking if it is full. This is
// the engine's only backpressure mechanism.
func (a *WalletActor) submit(ev ledger.Event) {
	a.inbox <- actorMsg{event: ev}
}

// submitFlush enqueues a flush request and returns the channel the
// actor's final snapshots will arrive on once it terminates.
func (a *WalletActor) submitFlush() <-chan map[ledger.ClientID]ledger.Snapshot {
	resultCh := make(chan map[ledger.ClientID]ledger.Snapshot, 1)
	a.inbox <- actorMsg{flush: &flushSignal{resultCh: resultCh}}
	return resultCh
}
