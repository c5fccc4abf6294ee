package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/is24/projects-manager/internal/projects/domain"
	"github.com/is24/projects-manager/internal/storage/jsonfile"
)

type memBackend struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (m *memBackend) Name() string { return "mem" }

func (m *memBackend) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, m.loadErr
}

func (m *memBackend) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func sampleProject(id string) domain.Project {
	return domain.Project{
		ProductID:        id,
		ProductName:      "Product " + id,
		ProductOwnerName: "Owner",
		Developers:       []string{"Dev A", "Dev B"},
		ScrumMasterName:  "Scrum Master",
		StartDate:        "2023/01/15",
		Methodology:      "Agile",
	}
}

func TestProjectRepository_Load(t *testing.T) {
	tests := []struct {
		name    string
		backend *memBackend
		want    int
	}{
		{"no data", &memBackend{}, 0},
		{"blank data", &memBackend{data: []byte("  \n")}, 0},
		{"corrupt json", &memBackend{data: []byte("{not json")}, 0},
		{"json null", &memBackend{data: []byte("null")}, 0},
		{"read error", &memBackend{loadErr: errors.New("disk gone")}, 0},
		{"two projects", &memBackend{data: []byte(`[{"productId":"a"},{"productId":"b"}]`)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewProjectRepository(tt.backend, nil)
			assert.Equal(t, tt.want, repo.Load(context.Background()))

			list := repo.List()
			assert.NotNil(t, list)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestProjectRepository_MissingFileListsEmptyArray(t *testing.T) {
	store := jsonfile.New(filepath.Join(t.TempDir(), "data.json"))
	repo := NewProjectRepository(store, nil)
	repo.Load(context.Background())

	raw, err := json.Marshal(repo.List())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestProjectRepository_AppendGetUpdate(t *testing.T) {
	repo := NewProjectRepository(&memBackend{}, nil)

	stored := repo.Append(sampleProject("p1"))
	assert.Equal(t, "p1", stored.ProductID)

	got, err := repo.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Product p1", got.ProductName)

	// returned values are copies
	got.Developers[0] = "mutated"
	again, err := repo.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Dev A", again.Developers[0])

	updated, err := repo.Update("p1", func(p domain.Project) domain.Project {
		p.ProductName = "Renamed"
		return p
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.ProductName)

	_, err = repo.Update("nope", func(p domain.Project) domain.Project { return p })
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.Get("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 1, repo.Len())
}

func TestProjectRepository_PersistMatchesMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewProjectRepository(jsonfile.New(path), nil)
	ctx := context.Background()

	repo.Append(sampleProject("p1"))
	repo.Append(sampleProject("p2"))
	require.NoError(t, repo.Persist(ctx))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []domain.Project
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, repo.List(), onDisk)

	// two-space indentation
	assert.Contains(t, string(raw), "\n  {\n    \"productId\": \"p1\"")

	reloaded := NewProjectRepository(jsonfile.New(path), nil)
	assert.Equal(t, 2, reloaded.Load(ctx))
	assert.Equal(t, repo.List(), reloaded.List())
}

func TestProjectRepository_PersistError(t *testing.T) {
	backend := &memBackend{saveErr: errors.New("read-only")}
	repo := NewProjectRepository(backend, nil)
	repo.Append(sampleProject("p1"))

	err := repo.Persist(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mem")
	assert.Equal(t, 1, repo.Len())
}

func TestProjectRepository_ConcurrentAppends(t *testing.T) {
	backend := &memBackend{}
	repo := NewProjectRepository(backend, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Append(sampleProject(domain.NewProductID()))
			_ = repo.Persist(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())

	var onDisk []domain.Project
	require.NoError(t, json.Unmarshal(backend.data, &onDisk))
	assert.Len(t, onDisk, 50)
	assert.Equal(t, 50, backend.saves)
}
