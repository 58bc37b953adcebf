package dayfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelogger/internal/errors"
	"timelogger/internal/repository"
)

var testDay = time.Date(2026, time.October, 18, 0, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".timelogger")
	store, err := New(Options{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleRecords() []repository.Record {
	return []repository.Record{
		{
			Name:        "Emails",
			Description: "inbox zero",
			Intervals: []repository.IntervalRecord{
				{Start: 1760767200.123456, End: repository.Float64Ptr(1760770800.5)},
				{Start: 1760778000, End: nil},
			},
		},
		{Name: ".Lunch", Intervals: []repository.IntervalRecord{}},
	}
}

func TestStore_FileName(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.Equal(t, "2026-10-18_Sunday.json", store.FileName(testDay))

	custom, err := New(Options{Dir: t.TempDir(), DayFormat: "20060102"})
	require.NoError(t, err)
	assert.Equal(t, "20261018.json", custom.FileName(testDay))
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)

	require.NoError(t, store.Save(ctx, testDay, sampleRecords()))

	_, err := os.Stat(filepath.Join(dir, "2026-10-18_Sunday.json"))
	require.NoError(t, err)

	loaded, err := store.Load(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), loaded)
}

func TestStore_FileShape(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)
	require.NoError(t, store.Save(ctx, testDay, sampleRecords()))

	data, err := os.ReadFile(filepath.Join(dir, store.FileName(testDay)))
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Emails", decoded[0]["name"])
	assert.Equal(t, "inbox zero", decoded[0]["description"])

	intervals := decoded[0]["intervals"].([]interface{})
	require.Len(t, intervals, 2)
	assert.Nil(t, intervals[1].(map[string]interface{})["end"])
	assert.Equal(t, []interface{}{}, decoded[1]["intervals"])
}

func TestStore_LoadMissingDay(t *testing.T) {
	store, _ := setupTestStore(t)

	loaded, err := store.Load(context.Background(), testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestStore_SaveDoesNotModifyInput(t *testing.T) {
	store, _ := setupTestStore(t)
	records := []repository.Record{{Name: "No intervals"}}

	require.NoError(t, store.Save(context.Background(), testDay, records))
	assert.Nil(t, records[0].Intervals)
}

func TestStore_LoadLegacyFile(t *testing.T) {
	store, dir := setupTestStore(t)

	legacy := `["{\"name\": \"Emails\", \"description\": \"\", \"time_blocks\": [{\"start\": 1760767200.123456, \"end\": 1760770800.5}, {\"start\": 1760778000.0, \"end\": null}]}", "{\"name\": \".Lunch\", \"description\": \"pizza\", \"time_blocks\": []}"]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.FileName(testDay)), []byte(legacy), 0644))

	loaded, err := store.Load(context.Background(), testDay)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Emails", loaded[0].Name)
	assert.Equal(t, []repository.IntervalRecord{
		{Start: 1760767200.123456, End: repository.Float64Ptr(1760770800.5)},
		{Start: 1760778000, End: nil},
	}, loaded[0].Intervals)
	assert.Equal(t, "pizza", loaded[1].Description)
	assert.Empty(t, loaded[1].Intervals)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	store, dir := setupTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.FileName(testDay)), []byte("{not json"), 0644))

	_, err := store.Load(context.Background(), testDay)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}

func TestStore_CancelledContext(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, testDay)
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, testDay, sampleRecords()))
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
