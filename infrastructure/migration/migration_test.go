package migration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository/mocks"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
	"go.uber.org/mock/gomock"
)

func newTestConn(t *testing.T) *database.Connection {
	t.Helper()

	conn, err := database.NewSQLiteMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, database.Migrate(context.Background(), conn))
	return conn
}

func intPtr(v int) *int {
	return &v
}

const legacyCSV = `total_people,contract_count,your_position,your_contract_position,timestamp
120,10,5,,2024-07-01 10:00:00
121,11,None,None,2024-07-01 10:05:00
`

const currentCSV = `timestamp,total_people,contract_count,contract_paid_count,contract_unpaid_count,your_position,your_contract_position,your_paid_position,your_unpaid_position
2024-07-02 09:00:00,130,14,9,5,7,3,2,
`

func TestParseHistoryCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, records []HistoryRecord, err error)
	}{
		{
			name:  "Sucesso - formato antigo sem colunas de pago/não pago",
			input: legacyCSV,
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.NoError(t, err)
				require.Len(t, records, 2)

				assert.Equal(t, 120, records[0].TotalPeople)
				assert.Equal(t, 10, records[0].ContractCount)
				assert.Nil(t, records[0].ContractPaidCount)
				assert.Nil(t, records[0].ContractUnpaidCount)
				assert.Equal(t, intPtr(5), records[0].YourPosition)
				assert.Nil(t, records[0].YourContractPosition)
				assert.Equal(t, time.Date(2024, 7, 1, 10, 0, 0, 0, rating.Location).Unix(), records[0].Timestamp.Unix())

				assert.Nil(t, records[1].YourPosition)
			},
		},
		{
			name:  "Sucesso - formato atual com colunas em outra ordem",
			input: currentCSV,
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.NoError(t, err)
				require.Len(t, records, 1)

				assert.Equal(t, 130, records[0].TotalPeople)
				assert.Equal(t, intPtr(9), records[0].ContractPaidCount)
				assert.Equal(t, intPtr(5), records[0].ContractUnpaidCount)
				assert.Equal(t, intPtr(2), records[0].YourPaidPosition)
				assert.Nil(t, records[0].YourUnpaidPosition)
			},
		},
		{
			name:  "Sucesso - linhas em branco são ignoradas",
			input: "total_people,contract_count,timestamp\n\n100,1,2024-07-01 10:00:00\n,,\n",
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 1)
			},
		},
		{
			name:  "Erro - coluna obrigatória ausente",
			input: "total_people,timestamp\n100,2024-07-01 10:00:00\n",
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "contract_count")
			},
		},
		{
			name:  "Erro - número inválido informa a linha",
			input: "total_people,contract_count,timestamp\n100,1,2024-07-01 10:00:00\nabc,1,2024-07-01 10:05:00\n",
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "linha 3")
			},
		},
		{
			name:  "Erro - timestamp fora do formato",
			input: "total_people,contract_count,timestamp\n100,1,01/07/2024\n",
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "timestamp")
			},
		},
		{
			name:  "Erro - arquivo vazio",
			input: "",
			validate: func(t *testing.T, records []HistoryRecord, err error) {
				require.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseHistoryCSV(strings.NewReader(tt.input))
			tt.validate(t, records, err)
		})
	}
}

func TestImportHistory(t *testing.T) {
	ctx := context.Background()
	conn := newTestConn(t)
	snapshots := repository.NewRatingSnapshotRepository(conn)

	legacy, err := ParseHistoryCSV(strings.NewReader(legacyCSV))
	require.NoError(t, err)

	imported, err := ImportHistory(ctx, conn, legacy, false)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	// registro antigo fica sem subtipos
	counters, err := snapshots.LastCounters(ctx)
	require.NoError(t, err)
	require.NotNil(t, counters)
	assert.Equal(t, 11, counters.ContractCount)
	assert.True(t, counters.SubtypesMissing)

	// segunda importação sem force é recusada
	_, err = ImportHistory(ctx, conn, legacy, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHistoryNotEmpty))

	current, err := ParseHistoryCSV(strings.NewReader(currentCSV))
	require.NoError(t, err)

	imported, err = ImportHistory(ctx, conn, current, true)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	total, err := snapshots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	latest, err := snapshots.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 9, latest.ContractPaidCount)
	assert.Equal(t, intPtr(3), latest.YourContractPosition)
	assert.True(t, strings.HasPrefix(latest.RunID, importRunPrefix))

	counters, err = snapshots.LastCounters(ctx)
	require.NoError(t, err)
	assert.False(t, counters.SubtypesMissing)
}

func TestImportHistory_Empty(t *testing.T) {
	imported, err := ImportHistory(context.Background(), newTestConn(t), nil, false)
	require.NoError(t, err)
	assert.Zero(t, imported)
}

func TestParseUsers(t *testing.T) {
	ids, err := ParseUsers(strings.NewReader("100\n\n  200 \n100\n-300\n"))
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, -300}, ids)

	_, err = ParseUsers(strings.NewReader("100\nabc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linha 2")
}

func TestImportUsers(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *mocks.MockSubscriberRepository)
		validate func(t *testing.T, imported int, err error)
	}{
		{
			name: "Sucesso - todos os chats inscritos",
			setup: func(repo *mocks.MockSubscriberRepository) {
				repo.EXPECT().SetSubscribed(gomock.Any(), int64(100), true).Return(nil)
				repo.EXPECT().SetSubscribed(gomock.Any(), int64(200), true).Return(nil)
			},
			validate: func(t *testing.T, imported int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, imported)
			},
		},
		{
			name: "Erro - falha no banco interrompe a importação",
			setup: func(repo *mocks.MockSubscriberRepository) {
				repo.EXPECT().SetSubscribed(gomock.Any(), int64(100), true).Return(nil)
				repo.EXPECT().SetSubscribed(gomock.Any(), int64(200), true).Return(errors.New("db down"))
			},
			validate: func(t *testing.T, imported int, err error) {
				require.Error(t, err)
				assert.Equal(t, 1, imported)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSubscriberRepository(ctrl)
			tt.setup(repo)

			imported, err := ImportUsers(context.Background(), repo, []int64{100, 200})
			tt.validate(t, imported, err)
		})
	}
}

func TestImportUsers_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSubscriberRepository(newTestConn(t))

	_, err := ImportUsers(ctx, repo, []int64{100, 200})
	require.NoError(t, err)
	// reexecutar não duplica
	_, err = ImportUsers(ctx, repo, []int64{100, 200})
	require.NoError(t, err)

	ids, err := repo.ListSubscribedChatIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, ids)
}
