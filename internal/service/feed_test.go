package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "batch_id", "reference_id", "consignee_name", "destination_address", "status", "created_at",
	})
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "reference_id", "event_type", "latitude", "longitude",
		"utc_timestamp", "az_timestamp", "signature_url", "photo_url",
	})
}

func TestLiveDeliveries_Pending(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFeedService(db)

	mock.ExpectQuery(`SELECT \* FROM "expected_deliveries"`).
		WillReturnRows(deliveryRows().
			AddRow(1, "BATCH-3F2A01", "BOL-847291A", "Desert Tech Manufacturing",
				"1400 E Innovation Park Dr, Tucson, AZ 85719", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "pod_events"`).
		WithArgs("BOL-847291A", 1).
		WillReturnRows(eventRows())

	entries, err := svc.LiveDeliveries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "BOL-847291A", entries[0].ReferenceID)
	assert.Equal(t, "PENDING", entries[0].Status)
	assert.Equal(t, "Pending", entries[0].LastUpdated)
	assert.Equal(t, "BATCH-3F2A01", entries[0].BatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveDeliveries_StatusFlipsToLatestEvent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFeedService(db)

	// 21:30 UTC is 02:30 PM on the fixed Arizona clock.
	az := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "expected_deliveries"`).
		WillReturnRows(deliveryRows().
			AddRow(1, "BATCH-3F2A01", "BOL-847291A", "Desert Tech Manufacturing",
				"1400 E Innovation Park Dr, Tucson, AZ 85719", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "pod_events"`).
		WithArgs("BOL-847291A", 1).
		WillReturnRows(eventRows().
			AddRow(9, 7, "BOL-847291A", "DELIVERY", nil, nil, az, az, "gs://pod-media/pod_delivery/s.png", nil))

	entries, err := svc.LiveDeliveries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "DELIVERY", entries[0].Status)
	assert.Equal(t, "03/14/2026 02:30 PM MST", entries[0].LastUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveDeliveries_MissingDerivedTime(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFeedService(db)

	mock.ExpectQuery(`SELECT \* FROM "expected_deliveries"`).
		WillReturnRows(deliveryRows().
			AddRow(2, "BATCH-3F2A01", "BOL-847291B", "Sonoran BioLabs",
				"Oro Valley Hospital Campus, Oro Valley, AZ 85755", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "pod_events"`).
		WithArgs("BOL-847291B", 1).
		WillReturnRows(eventRows().
			AddRow(3, 7, "BOL-847291B", "PICKUP", nil, nil, time.Now(), nil, nil, nil))

	entries, err := svc.LiveDeliveries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "PICKUP", entries[0].Status)
	assert.Equal(t, "N/A", entries[0].LastUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveDeliveries_ManifestOrderNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFeedService(db)

	mock.ExpectQuery(`SELECT \* FROM "expected_deliveries"`).
		WillReturnRows(deliveryRows().
			AddRow(3, "BATCH-B", "BOL-92", "Catalina Distribution Center", "Marana, AZ", "PENDING", time.Now()).
			AddRow(1, "BATCH-A", "BOL-11", "Sonoran BioLabs", "Oro Valley, AZ", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "pod_events"`).
		WithArgs("BOL-92", 1).
		WillReturnRows(eventRows())
	mock.ExpectQuery(`SELECT \* FROM "pod_events"`).
		WithArgs("BOL-11", 1).
		WillReturnRows(eventRows())

	entries, err := svc.LiveDeliveries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "BOL-92", entries[0].ReferenceID)
	assert.Equal(t, "BOL-11", entries[1].ReferenceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
