package command

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
	"unblinkingbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	fail map[string]error
}

func (m *MockSource) Open(_ context.Context, url string) (io.ReadCloser, error) {
	if err, ok := m.fail[url]; ok {
		return nil, err
	}
	return io.NopCloser(strings.NewReader("jpeg:" + url)), nil
}

type uploaded struct {
	upload  domain.Upload
	content string
}

type MockFileSender struct {
	mu       sync.Mutex
	attempts int
	uploads  []uploaded
	fail     map[string]error
	panics   map[string]bool
}

func (m *MockFileSender) UploadFile(_ context.Context, upload domain.Upload) error {
	content, _ := io.ReadAll(upload.Content)

	m.mu.Lock()
	m.attempts++
	m.mu.Unlock()

	if m.panics[upload.Title] {
		panic("upload exploded")
	}

	if err, ok := m.fail[upload.Title]; ok {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, uploaded{upload: upload, content: string(content)})
	return nil
}

var fixedNow = time.UnixMilli(1700000000000)

func newTestFetch(store *MockStore, source *MockSource, fs *MockFileSender, ts *MockTextSender) *SnapshotFetch {
	f := NewSnapshotFetch(store, source, fs, ts)
	f.now = func() time.Time { return fixedNow }
	return f
}

func frontdoorStore() *MockStore {
	return &MockStore{snapshots: []domain.Snapshot{
		{Key: "k1", Name: "frontdoor", URL: "u1"},
	}}
}

func TestSnapshotFetchSingleMatch(t *testing.T) {
	fs := &MockFileSender{}
	ts := &MockTextSender{}
	handler := newTestFetch(frontdoorStore(), &MockSource{}, fs, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "snapshot of frontdoor", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	assert.Empty(t, ts.sent)
	require.Len(t, fs.uploads, 1)

	got := fs.uploads[0]
	assert.Equal(t, "snapshot_frontdoor_1700000000000.jpg", got.upload.Filename)
	assert.Equal(t, "Snapshot of frontdoor", got.upload.Title)
	assert.Equal(t, "Here's that picture of the frontdoor that you wanted.", got.upload.Caption)
	assert.Equal(t, "C1", got.upload.ChannelID)
	assert.Equal(t, domain.DefaultSendOptions, got.upload.Options)
	assert.Equal(t, "jpeg:u1", got.content)
}

func TestSnapshotFetchMatchIgnoresCase(t *testing.T) {
	fs := &MockFileSender{}
	handler := newTestFetch(frontdoorStore(), &MockSource{}, fs, &MockTextSender{})

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "GET SNAPSHOT OF FRONTDOOR", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	assert.Len(t, fs.uploads, 1)
}

func TestSnapshotFetchNoMatch(t *testing.T) {
	fs := &MockFileSender{}
	ts := &MockTextSender{}
	handler := newTestFetch(frontdoorStore(), &MockSource{}, fs, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "snapshot of backdoor", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	assert.Equal(t, 0, fs.attempts)
	require.Len(t, ts.sent, 1)
	assert.Equal(t, noSuchSnapshot, ts.sent[0].text)
	assert.Equal(t, "C1", ts.sent[0].channelID)
}

func TestSnapshotFetchStoreFailureSendsHint(t *testing.T) {
	fs := &MockFileSender{}
	ts := &MockTextSender{}
	handler := newTestFetch(&MockStore{err: errors.New("unreadable")}, &MockSource{}, fs, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "snapshot of frontdoor", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	assert.Equal(t, 0, fs.attempts)
	require.Len(t, ts.sent, 1)
	assert.Equal(t, noSuchSnapshot, ts.sent[0].text)
}

func TestSnapshotFetchHintSendFailure(t *testing.T) {
	ts := &MockTextSender{err: errors.New("transport down")}
	handler := newTestFetch(frontdoorStore(), &MockSource{}, &MockFileSender{}, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "snapshot of backdoor", SenderID: "U42", ChannelID: "C1"})
	require.ErrorIs(t, err, domain.ErrDelivery)
}

func TestSnapshotFetchFailuresAreIsolated(t *testing.T) {
	store := &MockStore{snapshots: []domain.Snapshot{
		{Key: "k1", Name: "frontdoor", URL: "u1"},
		{Key: "k2", Name: "garage", URL: "u2"},
		{Key: "k3", Name: "porch", URL: "u3"},
		{Key: "k4", Name: "yard", URL: "u4"},
		{Key: "k5", Name: "attic", URL: "u5"},
	}}
	source := &MockSource{fail: map[string]error{"u4": errors.New("camera offline")}}
	fs := &MockFileSender{
		fail:   map[string]error{"Snapshot of garage": errors.New("upload rejected")},
		panics: map[string]bool{"Snapshot of porch": true},
	}
	ts := &MockTextSender{}
	handler := newTestFetch(store, source, fs, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "bot snapshot frontdoor garage porch yard", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	// yard never reaches the sender, its source failed
	assert.Equal(t, 3, fs.attempts)
	require.Len(t, fs.uploads, 1)
	assert.Equal(t, "Snapshot of frontdoor", fs.uploads[0].upload.Title)
	assert.Empty(t, ts.sent)
}

func TestSnapshotFetchSkipsUnnamedRecords(t *testing.T) {
	store := &MockStore{snapshots: []domain.Snapshot{{Key: "k0", Name: "", URL: "u0"}}}
	fs := &MockFileSender{}
	ts := &MockTextSender{}
	handler := newTestFetch(store, &MockSource{}, fs, ts)

	err := handler.Respond(t.Context(), time.Minute,
		&domain.Message{Text: "snapshot please", SenderID: "U42", ChannelID: "C1"})
	require.NoError(t, err)

	assert.Equal(t, 0, fs.attempts)
	assert.Len(t, ts.sent, 1)
}

func TestMatchSnapshots(t *testing.T) {
	snapshots := []domain.Snapshot{
		{Name: "door"},
		{Name: "frontdoor"},
		{Name: "garage"},
	}

	got := matchSnapshots(snapshots, "snapshot of the FrontDoor")

	assert.Equal(t, []domain.Snapshot{{Name: "door"}, {Name: "frontdoor"}}, got)
}
