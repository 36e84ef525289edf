package itmo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/integrator/itmo/mocks"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"go.uber.org/mock/gomock"
)

const page = `<html><body>
<div class="row"><p class="num"><span>1</span></p>Договор: да</div>
<div class="row ok"><p class="num"><span>2</span></p>Договор: да</div>
<div class="row"><p class="num"><span>3</span></p>Договор: нет</div>
</body></html>`

func TestITMOService_FetchSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)

	cfg := &config.Config{
		Rating: config.Rating{
			EntryClass:    "row",
			PositionClass: "num",
			PaidClass:     "ok",
		},
	}
	service := New(cfg, mockClient)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	mockClient.EXPECT().
		GetRatingPage(gomock.Any()).
		Return(doc, nil)

	snapshot, err := service.FetchSnapshot(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.TotalPeople)
	assert.Equal(t, 2, snapshot.ContractCount)
	assert.Equal(t, 1, snapshot.ContractPaidCount)
	require.NotNil(t, snapshot.YourPaidPosition)
	assert.Equal(t, 1, *snapshot.YourPaidPosition)
	assert.False(t, snapshot.Timestamp.IsZero())
}

func TestITMOService_FetchSnapshot_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(&config.Config{}, mockClient)

	fetchErr := errors.New("timeout")
	mockClient.EXPECT().
		GetRatingPage(gomock.Any()).
		Return(nil, fetchErr)

	snapshot, err := service.FetchSnapshot(context.Background(), "2")
	assert.ErrorIs(t, err, fetchErr)
	assert.Zero(t, snapshot.TotalPeople)
}
