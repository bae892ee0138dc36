package todotest

import (
	"slices"
	"strconv"
	"sync"

	"github.com/adamwoolhether/todoapi/todo"
)

// store keeps tasks in insertion order.
type store struct {
	mu     sync.RWMutex
	order  []string
	tasks  map[string]todo.Task
	nextID int
}

func newStore(seed []todo.Task) *store {
	s := store{
		order:  make([]string, 0, len(seed)),
		tasks:  make(map[string]todo.Task, len(seed)),
		nextID: 1,
	}

	for _, t := range seed {
		if _, dup := s.tasks[t.ID]; !dup {
			s.order = append(s.order, t.ID)
		}
		s.tasks[t.ID] = t

		if n, err := strconv.Atoi(t.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}

	return &s
}

// list returns all tasks, or only those owned by userID when it is set.
func (s *store) list(userID string) []todo.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]todo.Task, 0, len(s.order))
	for _, id := range s.order {
		t := s.tasks[id]
		if userID != "" && t.UserID != userID {
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks
}

func (s *store) get(id string) (todo.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	return t, ok
}

// create stores nt under the next sequential id.
func (s *store) create(nt todo.NewTask) todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := todo.Task{
		UserID:    nt.UserID,
		ID:        strconv.Itoa(s.nextID),
		Title:     nt.Title,
		Completed: nt.Completed,
	}
	s.nextID++

	s.order = append(s.order, t.ID)
	s.tasks[t.ID] = t

	return t
}

// update replaces an existing task, reporting false if t.ID is unknown.
func (s *store) update(t todo.Task) (todo.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return todo.Task{}, false
	}
	s.tasks[t.ID] = t

	return t, true
}

func (s *store) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return true
}
