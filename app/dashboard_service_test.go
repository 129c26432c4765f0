package app

import (
	"context"
	"testing"

	"leanfunnel/domain/enquiry"
	"leanfunnel/internal"
	"leanfunnel/internal/errors"
	"leanfunnel/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() *enquiry.Sheet {
	return &enquiry.Sheet{
		Name:    "System_Logic",
		Headers: []string{"Week", "Sample_Status", "Order_Status", "Expected_Value", "Final Order Value"},
		Records: []enquiry.Record{
			{"Week": "1", "Sample_Status": "Approved", "Order_Status": "Confirmed", "Expected_Value": "₹1,000", "Final Order Value": "₹800"},
			{"Week": "1", "Sample_Status": "Approved", "Order_Status": "Pending", "Expected_Value": "₹2,000", "Final Order Value": ""},
			{"Week": "2", "Sample_Status": "Pending", "Order_Status": "", "Expected_Value": "abc", "Final Order Value": ""},
			{"Week": " ", "Sample_Status": "Approved", "Order_Status": "Confirmed", "Expected_Value": "₹9,999", "Final Order Value": "₹9,999"},
		},
	}
}

func TestDashboardService_Load(t *testing.T) {
	source := testkit.NewStaticSource(sampleSheet())
	svc := NewDashboardService(source, WithServiceLogger(internal.Discard))

	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)

	m := dashboard.Result.Metrics
	assert.Equal(t, 3, m.TotalEnquiries)
	assert.Equal(t, 2, m.SampleApproved)
	assert.Equal(t, 1, m.OrdersConfirmed)
	assert.Equal(t, 3000.0, m.TotalExpectedValue)
	assert.Equal(t, 800.0, m.FinalOrderValue)
	assert.Equal(t, "static", dashboard.Source)
	assert.Len(t, dashboard.Summaries, 2)
	assert.Empty(t, dashboard.History)
}

func TestDashboardService_RecomputesEveryCall(t *testing.T) {
	source := testkit.NewStaticSource(sampleSheet())
	svc := NewDashboardService(source, WithServiceLogger(internal.Discard))

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	source.Sheet = &enquiry.Sheet{Records: []enquiry.Record{{"Week": "9"}}}
	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.Result.Metrics.TotalEnquiries)
	assert.Equal(t, 2, source.Calls())
}

func TestDashboardService_EmptyDatasetPassesThrough(t *testing.T) {
	source := testkit.NewStaticSource(&enquiry.Sheet{
		Headers: []string{"Week"},
		Records: []enquiry.Record{{"Week": ""}, {"Week": "  "}},
	})
	repo := testkit.NewInMemorySnapshotRepository()
	svc := NewDashboardService(source, WithSnapshots(repo, 5), WithServiceLogger(internal.Discard))

	dashboard, err := svc.Load(context.Background())
	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
	assert.Equal(t, 0, repo.Len(), "nothing is recorded for an empty dataset")
}

func TestDashboardService_SourceFailure(t *testing.T) {
	source := testkit.NewStaticSource(nil)
	source.Err = assert.AnError
	svc := NewDashboardService(source, WithServiceLogger(internal.Discard))

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, errors.IsEmptyDataset(err))
}

func TestDashboardService_RecordsSnapshots(t *testing.T) {
	source := testkit.NewStaticSource(sampleSheet())
	repo := testkit.NewInMemorySnapshotRepository()
	svc := NewDashboardService(source, WithSnapshots(repo, 2), WithServiceLogger(internal.Discard))

	for i := 0; i < 3; i++ {
		_, err := svc.Load(context.Background())
		require.NoError(t, err)
	}

	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, repo.Len())
	require.Len(t, dashboard.History, 2)
	assert.Equal(t, 3, dashboard.History[0].TotalEnquiries)
	assert.Equal(t, "Final Order Value", dashboard.History[0].FinalValueColumn)
}

func TestDashboardService_SnapshotFailureDoesNotFailLoad(t *testing.T) {
	source := testkit.NewStaticSource(sampleSheet())
	repo := testkit.NewInMemorySnapshotRepository()
	repo.SaveErr = assert.AnError
	repo.ListErr = assert.AnError
	svc := NewDashboardService(source, WithSnapshots(repo, 5), WithServiceLogger(internal.Discard))

	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, dashboard.History)

	_, err = svc.History(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}
