package notifier_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/metrics"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier/mocks"
	submocks "github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription/mocks"
	"go.uber.org/mock/gomock"
)

func changedEvent() domain.PollEvent {
	return domain.PollEvent{
		RunID:   "run123",
		Trigger: domain.PollTriggerSchedule,
		Snapshot: domain.RatingSnapshot{
			TotalPeople:         36,
			ContractCount:       12,
			ContractPaidCount:   7,
			ContractUnpaidCount: 5,
			Timestamp:           time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC),
		},
		Changes: domain.ChangeSet{
			domain.CounterContract: {Old: 10, New: 12},
		},
	}
}

func newDispatcher(t *testing.T, intervalMs int) (*notifier.Dispatcher, *mocks.MockSender, *submocks.MockManager) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockSender := mocks.NewMockSender(ctrl)
	mockManager := submocks.NewMockManager(ctrl)

	cfg := &config.Config{Telegram: config.Telegram{SendIntervalMilliseconds: intervalMs}}
	return notifier.NewDispatcher(mockSender, mockManager, metrics.New(), cfg), mockSender, mockManager
}

func TestDispatcher_Notify(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(sender *mocks.MockSender, manager *submocks.MockManager)
		validate func(t *testing.T, report notifier.Report, err error)
	}{
		{
			name: "Todos os inscritos recebem a mensagem",
			setup: func(sender *mocks.MockSender, manager *submocks.MockManager) {
				manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1, 2, 3}, nil)
				gomock.InOrder(
					sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).Return(nil),
					sender.EXPECT().SendText(gomock.Any(), int64(2), gomock.Any()).Return(nil),
					sender.EXPECT().SendText(gomock.Any(), int64(3), gomock.Any()).Return(nil),
				)
			},
			validate: func(t *testing.T, report notifier.Report, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, report.Recipients)
				assert.Equal(t, 3, report.Sent)
				assert.Equal(t, 0, report.Failed)
			},
		},
		{
			name: "Falha em um destinatário não interrompe os demais",
			setup: func(sender *mocks.MockSender, manager *submocks.MockManager) {
				manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1, 2, 3}, nil)
				sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).Return(nil)
				sender.EXPECT().SendText(gomock.Any(), int64(2), gomock.Any()).Return(errors.New("timeout"))
				sender.EXPECT().SendText(gomock.Any(), int64(3), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, report notifier.Report, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, report.Sent)
				assert.Equal(t, 1, report.Failed)
			},
		},
		{
			name: "Chat indisponível perde a inscrição",
			setup: func(sender *mocks.MockSender, manager *submocks.MockManager) {
				manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1, 2}, nil)
				sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).Return(fmt.Errorf("forbidden: %w", notifier.ErrRecipientGone))
				manager.EXPECT().Unsubscribe(gomock.Any(), int64(1)).Return(nil)
				sender.EXPECT().SendText(gomock.Any(), int64(2), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, report notifier.Report, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, report.Sent)
				assert.Equal(t, 1, report.Failed)
			},
		},
		{
			name: "Sem inscritos",
			setup: func(sender *mocks.MockSender, manager *submocks.MockManager) {
				manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{}, nil)
			},
			validate: func(t *testing.T, report notifier.Report, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, report.Recipients)
			},
		},
		{
			name: "Erro ao listar inscritos",
			setup: func(sender *mocks.MockSender, manager *submocks.MockManager) {
				manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, report notifier.Report, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, sender, manager := newDispatcher(t, 0)
			tt.setup(sender, manager)

			report, err := dispatcher.Notify(context.Background(), changedEvent())
			tt.validate(t, report, err)
		})
	}
}

func TestDispatcher_Notify_MessageContent(t *testing.T) {
	dispatcher, sender, manager := newDispatcher(t, 0)

	manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1}, nil)
	sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(func(_ context.Context, _ int64, text string) error {
		assert.True(t, strings.Contains(text, "10 → 12 (+2)"))
		assert.True(t, strings.Contains(text, "2025-07-20 12:00:00"))
		return nil
	})

	_, err := dispatcher.Notify(context.Background(), changedEvent())
	require.NoError(t, err)
}

func TestDispatcher_Notify_EmptyChangeSet(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, 0)

	event := changedEvent()
	event.Changes = domain.ChangeSet{}

	report, err := dispatcher.Notify(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, notifier.Report{}, report)
}

func TestDispatcher_Notify_Paced(t *testing.T) {
	dispatcher, sender, manager := newDispatcher(t, 20)

	manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1, 2, 3, 4}, nil)
	sender.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	start := time.Now()
	report, err := dispatcher.Notify(context.Background(), changedEvent())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Sent)
	// a primeira mensagem sai imediatamente, as outras três esperam 20ms cada
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestDispatcher_Notify_CanceledContext(t *testing.T) {
	dispatcher, sender, manager := newDispatcher(t, 1000)

	manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1, 2, 3}, nil)
	sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report, err := dispatcher.Notify(ctx, changedEvent())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 2, report.Failed)
}

func TestDispatcher_Broadcast(t *testing.T) {
	dispatcher, sender, manager := newDispatcher(t, 0)

	manager.EXPECT().AllChatIDs(gomock.Any()).Return([]int64{5, 6}, nil)
	sender.EXPECT().SendText(gomock.Any(), int64(5), "Привет").Return(nil)
	sender.EXPECT().SendText(gomock.Any(), int64(6), "Привет").Return(nil)

	report, err := dispatcher.Broadcast(context.Background(), "Привет")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
	assert.NotEmpty(t, report.BatchID)
}

func TestDispatcher_Run(t *testing.T) {
	dispatcher, sender, manager := newDispatcher(t, 0)

	delivered := make(chan struct{})
	manager.EXPECT().SubscribedChatIDs(gomock.Any()).Return([]int64{1}, nil)
	sender.EXPECT().SendText(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(func(context.Context, int64, string) error {
		close(delivered)
		return nil
	})

	events := make(chan domain.PollEvent, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx, events)
		close(done)
	}()

	events <- changedEvent()

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("evento não entregue")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("despachante não parou")
	}
}
