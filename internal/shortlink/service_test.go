package shortlink

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"foodgram/internal/cache"
	"foodgram/internal/db"
	"foodgram/internal/models"
)

// fakeStore is an in-memory Store for unit tests.
type fakeStore struct {
	refs     map[uuid.UUID]*db.RecipeRef
	byRecipe map[uuid.UUID]*models.ShortLink
	byHash   map[string]*models.ShortLink

	insertCalls int
	hashReads   int
	insertErr   error
	onInsert    func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		refs:     make(map[uuid.UUID]*db.RecipeRef),
		byRecipe: make(map[uuid.UUID]*models.ShortLink),
		byHash:   make(map[string]*models.ShortLink),
	}
}

func (f *fakeStore) addRecipe(name string) uuid.UUID {
	id := uuid.New()
	f.refs[id] = &db.RecipeRef{ID: id, Name: name, CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return id
}

func (f *fakeStore) GetRecipeRef(_ context.Context, id uuid.UUID) (*db.RecipeRef, error) {
	ref, ok := f.refs[id]
	if !ok {
		return nil, db.ErrRecipeNotFound
	}
	return ref, nil
}

func (f *fakeStore) GetShortLinkByRecipe(_ context.Context, recipeID uuid.UUID) (*models.ShortLink, error) {
	link, ok := f.byRecipe[recipeID]
	if !ok {
		return nil, db.ErrShortLinkNotFound
	}
	return link, nil
}

func (f *fakeStore) GetShortLinkByHash(_ context.Context, hash string) (*models.ShortLink, error) {
	f.hashReads++
	link, ok := f.byHash[hash]
	if !ok {
		return nil, db.ErrShortLinkNotFound
	}
	return link, nil
}

func (f *fakeStore) InsertShortLink(_ context.Context, link *models.ShortLink) error {
	f.insertCalls++
	if f.onInsert != nil {
		f.onInsert()
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, exists := f.byHash[link.URLHash]; exists {
		return db.ErrDuplicateHash
	}
	link.ID = uuid.New()
	link.CreatedAt = time.Now()
	f.byRecipe[link.RecipeID] = link
	f.byHash[link.URLHash] = link
	return nil
}

func TestHash(t *testing.T) {
	id := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	hash := Hash(id, "Pancakes", createdAt)

	if len(hash) != HashLength {
		t.Errorf("Hash() length = %d, want %d", len(hash), HashLength)
	}
	for _, c := range hash {
		isURLSafe := c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_'
		if !isURLSafe {
			t.Errorf("Hash() contains non URL-safe character %q", c)
		}
	}

	// Deterministic for identical input
	if again := Hash(id, "Pancakes", createdAt); again != hash {
		t.Errorf("Hash() not deterministic: %q vs %q", hash, again)
	}

	// Any seed component change must change the hash
	if Hash(id, "Waffles", createdAt) == hash {
		t.Error("Hash() ignored the recipe name")
	}
	if Hash(uuid.New(), "Pancakes", createdAt) == hash {
		t.Error("Hash() ignored the recipe ID")
	}
	if Hash(id, "Pancakes", createdAt.Add(time.Second)) == hash {
		t.Error("Hash() ignored the creation time")
	}
}

func TestGetOrCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")

	link, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if link.RecipeID != recipeID {
		t.Errorf("GetOrCreate() recipe = %v, want %v", link.RecipeID, recipeID)
	}
	if len(link.URLHash) != HashLength {
		t.Errorf("GetOrCreate() hash length = %d, want %d", len(link.URLHash), HashLength)
	}
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")

	first, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() first error = %v", err)
	}
	second, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() second error = %v", err)
	}

	if first.URLHash != second.URLHash {
		t.Errorf("GetOrCreate() hashes differ: %q vs %q", first.URLHash, second.URLHash)
	}
	if store.insertCalls != 1 {
		t.Errorf("GetOrCreate() inserted %d times, want 1", store.insertCalls)
	}
}

func TestGetOrCreate_UnknownRecipe(t *testing.T) {
	svc := NewService(newFakeStore(), cache.NewMemory())

	_, err := svc.GetOrCreate(context.Background(), uuid.New())
	if err != db.ErrRecipeNotFound {
		t.Errorf("GetOrCreate() error = %v, want ErrRecipeNotFound", err)
	}
}

func TestGetOrCreate_LostInsertRace(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")

	// A concurrent writer wins the insert race: the row appears between
	// our initial read and our insert attempt.
	winner := &models.ShortLink{
		ID:       uuid.New(),
		RecipeID: recipeID,
		URLHash:  "winner12",
	}
	store.insertErr = db.ErrDuplicateHash
	store.onInsert = func() {
		store.byRecipe[recipeID] = winner
		store.byHash[winner.URLHash] = winner
	}

	link, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if link.URLHash != "winner12" {
		t.Errorf("GetOrCreate() hash = %q, want the winner's %q", link.URLHash, "winner12")
	}
}

func TestGetOrCreate_TrueCollision(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")

	// The hash is taken by a different recipe and stays taken.
	store.insertErr = db.ErrDuplicateHash

	_, err := svc.GetOrCreate(ctx, recipeID)
	if err != db.ErrDuplicateHash {
		t.Errorf("GetOrCreate() error = %v, want ErrDuplicateHash", err)
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")

	link, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	resolved, err := svc.Resolve(ctx, link.URLHash)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != recipeID {
		t.Errorf("Resolve() = %v, want %v", resolved, recipeID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewService(newFakeStore(), cache.NewMemory())

	_, err := svc.Resolve(context.Background(), "nonexist")
	if err != db.ErrShortLinkNotFound {
		t.Errorf("Resolve() error = %v, want ErrShortLinkNotFound", err)
	}
}

func TestResolve_CacheHitSkipsStore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, cache.NewMemory())
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")
	link, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if _, err := svc.Resolve(ctx, link.URLHash); err != nil {
		t.Fatalf("Resolve() first error = %v", err)
	}
	readsAfterFirst := store.hashReads

	if _, err := svc.Resolve(ctx, link.URLHash); err != nil {
		t.Fatalf("Resolve() second error = %v", err)
	}
	if store.hashReads != readsAfterFirst {
		t.Errorf("Resolve() hit the store on a cached hash: %d reads, want %d", store.hashReads, readsAfterFirst)
	}
}

func TestResolve_PoisonedCacheFallsThrough(t *testing.T) {
	store := newFakeStore()
	memory := cache.NewMemory()
	svc := NewService(store, memory)
	ctx := context.Background()

	recipeID := store.addRecipe("Pancakes")
	link, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	// An unparseable cache entry must not break resolution.
	if err := memory.Set(ctx, "recipe_hash_"+link.URLHash, []byte("not-a-uuid"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	resolved, err := svc.Resolve(ctx, link.URLHash)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != recipeID {
		t.Errorf("Resolve() = %v, want %v", resolved, recipeID)
	}
}
