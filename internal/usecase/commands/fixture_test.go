//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra/memstore"
	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/shared"
	"availability-engine/tests/common/builder"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []shared.NotificationEvent
}

func (n *recordingNotifier) Notify(_ context.Context, e shared.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) ofType(t shared.EventType) []shared.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []shared.NotificationEvent
	for _, e := range n.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// failingSlots refuses to store slots that start on one of the listed days.
type failingSlots struct {
	shared.SlotRepository
	mu   sync.Mutex
	days map[string]bool
}

func (f *failingSlots) Create(ctx context.Context, s *slot.Slot) (bool, error) {
	f.mu.Lock()
	fail := f.days[s.TimeRange().Start().Format(time.DateOnly)]
	f.mu.Unlock()
	if fail {
		return false, errs.New("slot store unavailable")
	}
	return f.SlotRepository.Create(ctx, s)
}

func (f *failingSlots) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = nil
}

type fixture struct {
	store      *memstore.Store
	slots      *failingSlots
	clock      *clock.MockClock
	notifier   *recordingNotifier
	dispatcher *shared.Dispatcher
	holds      commands.HoldCommands
	requests   commands.BookingRequestCommands
	slotCmds   commands.SlotCommands

	guide     party.Ref
	transport party.Ref
	agency    party.Ref
	dmc       party.Ref
}

func newFixture(t *testing.T, mutate ...func(*commands.Policy)) *fixture {
	t.Helper()

	policy := commands.DefaultPolicy()
	for _, m := range mutate {
		m(&policy)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	f := &fixture{
		store:    store,
		slots:    &failingSlots{SlotRepository: store.Slots()},
		clock:    clock.NewMockClock(t0),
		notifier: &recordingNotifier{},
	}
	f.dispatcher = shared.NewDispatcher(f.notifier, logger, time.Second)
	f.holds = commands.NewHoldCommands(store.UnitOfWork(), store.Holds(), f.slots, store.Parties(), f.dispatcher, f.clock, policy, logger)
	f.requests = commands.NewBookingRequestCommands(store.UnitOfWork(), store.BookingRequests(), f.slots, store.Parties(), f.dispatcher, f.clock, policy, logger)
	f.slotCmds = commands.NewSlotCommands(f.slots, f.clock, logger)

	f.guide = f.register(t, party.TypeGuide)
	f.transport = f.register(t, party.TypeTransport)
	f.agency = f.register(t, party.TypeAgency)
	f.dmc = f.register(t, party.TypeDMC)
	return f
}

func (f *fixture) register(t *testing.T, pt party.Type) party.Ref {
	t.Helper()
	b := builder.NewPartyBuilder().WithType(pt)
	require.NoError(t, f.store.Parties().Upsert(context.Background(), b.BuildAccount()))
	return b.BuildRef()
}

// settle waits for fire-and-forget notifications.
func (f *fixture) settle() {
	f.dispatcher.Wait()
}

func (f *fixture) holdInput(start, end, message string) commands.RequestHoldInput {
	return builder.NewHoldBuilder().With(func(b *builder.HoldBuilder) {
		b.Holdee = f.guide
		b.Message = message
	}).WithDates(start, end).BuildInput()
}
