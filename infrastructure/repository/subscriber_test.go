package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriberRepository(newTestConn(t))

	// /start apenas registra o chat
	require.NoError(t, repo.Register(ctx, 100))
	require.NoError(t, repo.Register(ctx, 100))

	sub, err := repo.GetByChatID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.False(t, sub.Subscribed)
	assert.Nil(t, sub.TrackedID)

	require.NoError(t, repo.SetSubscribed(ctx, 100, true))
	require.NoError(t, repo.SetSubscribed(ctx, 200, true))
	require.NoError(t, repo.SetSubscribed(ctx, 300, true))
	require.NoError(t, repo.SetSubscribed(ctx, 300, false))

	// Register não desfaz a inscrição
	require.NoError(t, repo.Register(ctx, 200))

	subscribed, err := repo.ListSubscribedChatIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, subscribed)

	all, err := repo.ListChatIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300}, all)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	subscribedTotal, err := repo.CountSubscribed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, subscribedTotal)
}

func TestSubscriberRepository_SetTrackedID(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriberRepository(newTestConn(t))

	require.NoError(t, repo.SetSubscribed(ctx, 100, true))
	require.NoError(t, repo.SetTrackedID(ctx, 100, "4154668"))

	sub, err := repo.GetByChatID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.NotNil(t, sub.TrackedID)
	assert.Equal(t, "4154668", *sub.TrackedID)
	assert.True(t, sub.Subscribed)

	// chat novo com ID acompanhado não fica inscrito
	require.NoError(t, repo.SetTrackedID(ctx, 200, "1"))
	sub, err = repo.GetByChatID(ctx, 200)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.False(t, sub.Subscribed)

	// ID vazio limpa o valor
	require.NoError(t, repo.SetTrackedID(ctx, 100, ""))
	sub, err = repo.GetByChatID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, sub.TrackedID)
}

func TestSubscriberRepository_GetUnknown(t *testing.T) {
	repo := NewSubscriberRepository(newTestConn(t))

	sub, err := repo.GetByChatID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, sub)
}
