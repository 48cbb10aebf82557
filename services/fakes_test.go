package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
	"github.com/Dosada05/padel-tournament/storage"
)

var testOrganizer = Organizer{subject: organizerSubject, tokenID: "test"}

type keepOrder struct{}

func (keepOrder) Shuffle(int, func(i, j int)) {}

// fakeTournamentRepo keeps tournaments as JSON documents, like the postgres store does.
type fakeTournamentRepo struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{docs: make(map[string][]byte)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[t.ID]; ok {
		return repositories.ErrTournamentExists
	}
	doc, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.docs[t.ID] = doc
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	t := &models.Tournament{}
	if err := json.Unmarshal(doc, t); err != nil {
		return nil, err
	}
	t.RebuildMatches()
	return t, nil
}

func (r *fakeTournamentRepo) ListByTemplate(ctx context.Context, templateID string) ([]repositories.TournamentSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repositories.TournamentSummary
	for _, doc := range r.docs {
		var t models.Tournament
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, err
		}
		if t.TemplateID != templateID {
			continue
		}
		out = append(out, repositories.TournamentSummary{
			ID:         t.ID,
			Name:       t.Name,
			TemplateID: t.TemplateID,
			Format:     t.Format,
			State:      t.State,
			Date:       t.Date,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) Save(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	doc, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.docs[t.ID] = doc
	r.saves++
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeTournamentRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type fakeResultRepo struct {
	mu       sync.Mutex
	results  []models.HistoricalResult
	archived map[string]bool
	appends  int
}

func newFakeResultRepo(history ...models.HistoricalResult) *fakeResultRepo {
	return &fakeResultRepo{results: history, archived: make(map[string]bool)}
}

func (r *fakeResultRepo) ListByTemplate(ctx context.Context, templateID string) ([]models.HistoricalResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.HistoricalResult, 0)
	for _, res := range r.results {
		if res.TemplateID == templateID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) AppendEvent(ctx context.Context, eventID string, results []models.HistoricalResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appends++
	if r.archived[eventID] {
		return repositories.ErrResultsAlreadyArchived
	}
	r.archived[eventID] = true
	r.results = append(r.results, results...)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (n *recordingNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.messages))
	for _, m := range n.messages {
		out = append(out, m.Type)
	}
	return out
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failOn  string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failOn != "" && bytes.Contains([]byte(key), []byte(u.failOn)) {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://files.example.com/" + key
}
