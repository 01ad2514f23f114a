package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pod-portal/internal/media"
	"pod-portal/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

type fakeStore struct {
	err     error
	calls   int
	names   []string
	folders []string
}

func (f *fakeStore) Upload(_ context.Context, file *media.File, folder string) (string, error) {
	f.calls++
	f.names = append(f.names, file.Name)
	f.folders = append(f.folders, folder)
	if f.err != nil {
		return "", f.err
	}
	return "gs://pod-media/" + folder + "/" + file.Name, nil
}

func sigURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestCapture_Success(t *testing.T) {
	db, mock := newMockDB(t)
	store := &fakeStore{}
	svc := NewPODService(db, store)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pod_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	event, err := svc.Capture(context.Background(), CaptureInput{
		User:        &model.User{ID: 7},
		ReferenceID: "BOL-847291A",
		EventType:   "DELIVERY",
		Latitude:    "32.2226066",
		Longitude:   "-110.9747108",
		Photo:       &media.File{Name: "truck.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
		Signature:   sigURI("sig-bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, event)

	// Photo first, then signature, both into the event-type folder.
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, []string{"pod_delivery", "pod_delivery"}, store.folders)
	assert.Equal(t, "truck.jpg", store.names[0])

	assert.Equal(t, 42, event.ID)
	require.NotNil(t, event.PhotoURL)
	require.NotNil(t, event.SignatureURL)
	assert.Equal(t, "gs://pod-media/pod_delivery/truck.jpg", *event.PhotoURL)

	// az timestamp sits in the fixed UTC-7 zone at the commit moment.
	require.NotNil(t, event.AZTimestamp)
	_, offset := event.AZTimestamp.Zone()
	assert.Equal(t, -7*60*60, offset)
	assert.Less(t, event.AZTimestamp.Sub(event.UTCTimestamp), time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCapture_BadSignature_NoSideEffects(t *testing.T) {
	db, mock := newMockDB(t)
	store := &fakeStore{}
	svc := NewPODService(db, store)

	for _, sig := range []string{
		"data:image/png;base64", // missing separator
		"data:image/png;base64,%%%not-base64%%%",
	} {
		event, err := svc.Capture(context.Background(), CaptureInput{
			User:      &model.User{ID: 7},
			EventType: "PICKUP",
			Photo:     &media.File{Name: "truck.jpg"},
			Signature: sig,
		})
		assert.Nil(t, event)

		var ce *CaptureError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, FailureDecode, ce.Kind)

		var de *media.DecodingError
		assert.ErrorAs(t, err, &de)
	}

	// Zero uploads, zero database statements.
	assert.Equal(t, 0, store.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCapture_UploadFailure_NoRow(t *testing.T) {
	db, mock := newMockDB(t)
	store := &fakeStore{err: errors.New("storage unreachable")}
	svc := NewPODService(db, store)

	event, err := svc.Capture(context.Background(), CaptureInput{
		User:      &model.User{ID: 7},
		EventType: "DELIVERY",
		Photo:     &media.File{Name: "truck.jpg"},
	})
	assert.Nil(t, event)

	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FailureUpload, ce.Kind)
	assert.Equal(t, 1, store.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCapture_PersistFailure_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	store := &fakeStore{}
	svc := NewPODService(db, store)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pod_events"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	event, err := svc.Capture(context.Background(), CaptureInput{
		User:        &model.User{ID: 7},
		ReferenceID: "BOL-847291A",
		EventType:   "DELIVERY",
		Signature:   sigURI("sig"),
	})
	assert.Nil(t, event)

	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FailurePersist, ce.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCapture_NoMedia(t *testing.T) {
	db, mock := newMockDB(t)
	store := &fakeStore{}
	svc := NewPODService(db, store)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pod_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	event, err := svc.Capture(context.Background(), CaptureInput{
		User:        &model.User{ID: 7},
		ReferenceID: "BOL-847291B",
		EventType:   "PICKUP",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.calls)
	assert.Nil(t, event.PhotoURL)
	assert.Nil(t, event.SignatureURL)
	assert.Nil(t, event.Latitude)
	assert.Nil(t, event.Longitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}
