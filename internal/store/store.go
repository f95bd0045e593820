package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/labrinth/backend/internal/models"
)

// Document file names inside the data directory.
const (
	usersDoc      = "users.json"
	categoriesDoc = "categories.json"
	postsDoc      = "posts.json"
	repliesDoc    = "replies.json"
)

// Store is the flat-file persistence layer. Each document is a JSON array of
// records, read whole and written whole. A single store-wide RWMutex
// serializes mutations: two concurrent read-modify-write cycles against the
// same document would otherwise race and the last writer would silently drop
// the other's update.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open prepares a store rooted at dir, creating the directory if needed.
// A missing document file reads as an empty list; the seeder normally
// creates the starter documents.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Users returns the full users document.
func (s *Store) Users() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readDoc[models.User](filepath.Join(s.dir, usersDoc))
}

// Categories returns the full categories document.
func (s *Store) Categories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readDoc[models.Category](filepath.Join(s.dir, categoriesDoc))
}

// Posts returns the full posts document.
func (s *Store) Posts() ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readDoc[models.Post](filepath.Join(s.dir, postsDoc))
}

// Replies returns the full replies document.
func (s *Store) Replies() ([]models.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readDoc[models.Reply](filepath.Join(s.dir, repliesDoc))
}

// Update runs fn inside the store's write lock. Documents are loaded lazily
// through the Tx, mutated in memory, and written back only after fn returns
// nil. Deferring the writes until the whole mutation has been computed keeps
// a failed compound operation (for example a post delete that also touches
// replies and categories) from persisting a partial cascade.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{dir: s.dir}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// Tx is a single batched mutation against the store. It is only valid inside
// the Update callback that created it.
type Tx struct {
	dir string

	users      []models.User
	categories []models.Category
	posts      []models.Post
	replies    []models.Reply

	usersLoaded      bool
	categoriesLoaded bool
	postsLoaded      bool
	repliesLoaded    bool

	usersDirty      bool
	categoriesDirty bool
	postsDirty      bool
	repliesDirty    bool
}

// Users returns the users document, loading it on first use.
func (tx *Tx) Users() ([]models.User, error) {
	if !tx.usersLoaded {
		users, err := readDoc[models.User](filepath.Join(tx.dir, usersDoc))
		if err != nil {
			return nil, err
		}
		tx.users = users
		tx.usersLoaded = true
	}
	return tx.users, nil
}

// Categories returns the categories document, loading it on first use.
func (tx *Tx) Categories() ([]models.Category, error) {
	if !tx.categoriesLoaded {
		categories, err := readDoc[models.Category](filepath.Join(tx.dir, categoriesDoc))
		if err != nil {
			return nil, err
		}
		tx.categories = categories
		tx.categoriesLoaded = true
	}
	return tx.categories, nil
}

// Posts returns the posts document, loading it on first use.
func (tx *Tx) Posts() ([]models.Post, error) {
	if !tx.postsLoaded {
		posts, err := readDoc[models.Post](filepath.Join(tx.dir, postsDoc))
		if err != nil {
			return nil, err
		}
		tx.posts = posts
		tx.postsLoaded = true
	}
	return tx.posts, nil
}

// Replies returns the replies document, loading it on first use.
func (tx *Tx) Replies() ([]models.Reply, error) {
	if !tx.repliesLoaded {
		replies, err := readDoc[models.Reply](filepath.Join(tx.dir, repliesDoc))
		if err != nil {
			return nil, err
		}
		tx.replies = replies
		tx.repliesLoaded = true
	}
	return tx.replies, nil
}

// SaveUsers stages a new users document for the commit.
func (tx *Tx) SaveUsers(users []models.User) {
	tx.users = users
	tx.usersLoaded = true
	tx.usersDirty = true
}

// SaveCategories stages a new categories document for the commit.
func (tx *Tx) SaveCategories(categories []models.Category) {
	tx.categories = categories
	tx.categoriesLoaded = true
	tx.categoriesDirty = true
}

// SavePosts stages a new posts document for the commit.
func (tx *Tx) SavePosts(posts []models.Post) {
	tx.posts = posts
	tx.postsLoaded = true
	tx.postsDirty = true
}

// SaveReplies stages a new replies document for the commit.
func (tx *Tx) SaveReplies(replies []models.Reply) {
	tx.replies = replies
	tx.repliesLoaded = true
	tx.repliesDirty = true
}

// commit writes every dirty document. There is no rollback across documents:
// if a later write fails the earlier ones stay on disk. Batching all writes
// after the mutation has been computed keeps that window to I/O failures
// only, and the read paths recompute counters so a torn cascade cannot
// poison reads permanently.
func (tx *Tx) commit() error {
	if tx.usersDirty {
		if err := writeDoc(filepath.Join(tx.dir, usersDoc), tx.users); err != nil {
			return err
		}
	}
	if tx.categoriesDirty {
		if err := writeDoc(filepath.Join(tx.dir, categoriesDoc), tx.categories); err != nil {
			return err
		}
	}
	if tx.postsDirty {
		if err := writeDoc(filepath.Join(tx.dir, postsDoc), tx.posts); err != nil {
			return err
		}
	}
	if tx.repliesDirty {
		if err := writeDoc(filepath.Join(tx.dir, repliesDoc), tx.replies); err != nil {
			return err
		}
	}
	return nil
}

func readDoc[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func writeDoc[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	// Write through a temp file and rename so a crashed write never leaves a
	// half-written document behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", filepath.Base(path), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
