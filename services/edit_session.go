package services

import (
	"errors"
	"sync"

	"github.com/flehn/flutter-edanos-sub001/models"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("editing session not found")
	ErrSaveInFlight    = errors.New("a save is already in progress")
)

// EditSession holds one user's working copy of a meal. Edits land on the
// copy only; the stored meal changes when Save succeeds.
type EditSession struct {
	ID     string
	UserID uint
	Meal   *models.Meal

	saving bool
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*EditSession
	repo     *MealRepository
}

func NewSessionStore(repo *MealRepository) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*EditSession),
		repo:     repo,
	}
}

// Begin opens an editing session over a deep copy of the meal.
func (s *SessionStore) Begin(userID uint, meal *models.Meal) *EditSession {
	sess := &EditSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Meal:   meal.Clone(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) get(userID uint, id string) (*EditSession, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Snapshot returns a copy of the session's working meal.
func (s *SessionStore) Snapshot(userID uint, id string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	return sess.Meal.Clone(), nil
}

// UpdateAmount applies a slider change to the working copy.
func (s *SessionStore) UpdateAmount(userID uint, id string, index int, amount float64) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Meal.UpdateIngredientAmount(index, amount); err != nil {
		return nil, err
	}
	return sess.Meal.Clone(), nil
}

func (s *SessionStore) RemoveIngredient(userID uint, id string, index int) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Meal.RemoveIngredient(index); err != nil {
		return nil, err
	}
	return sess.Meal.Clone(), nil
}

// AddSearchResult appends every ingredient of a confirmed search result to
// the working copy and reports how many were added.
func (s *SessionStore) AddSearchResult(userID uint, id string, res *SearchResult) (*models.Meal, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(userID, id)
	if err != nil {
		return nil, 0, err
	}
	added := AppendSearchResult(sess.Meal, res)
	return sess.Meal.Clone(), added, nil
}

// Save persists the working copy: a meal without an id is created, one with
// an id is updated in place; created reports which happened. A second save
// while one is running is refused with ErrSaveInFlight rather than queued.
// On failure the stored meal is untouched and the session keeps its working
// copy.
func (s *SessionStore) Save(userID uint, id string) (meal *models.Meal, created bool, err error) {
	s.mu.Lock()
	sess, err := s.get(userID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	if sess.saving {
		s.mu.Unlock()
		return nil, false, ErrSaveInFlight
	}
	sess.saving = true
	snapshot := sess.Meal.Clone()
	snapshot.UserID = userID
	s.mu.Unlock()

	created = snapshot.ID == ""

	var saveErr error
	if created {
		_, saveErr = s.repo.SaveMeal(snapshot)
	} else {
		saveErr = s.repo.UpdateMeal(userID, snapshot.ID, snapshot)
	}

	s.mu.Lock()
	sess.saving = false
	if saveErr == nil && sess.Meal.ID == "" {
		sess.Meal.ID = snapshot.ID
	}
	s.mu.Unlock()

	if saveErr != nil {
		return nil, false, saveErr
	}
	return snapshot, created, nil
}

// Discard drops the session and its working copy.
func (s *SessionStore) Discard(userID uint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.get(userID, id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}
