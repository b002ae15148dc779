package course_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/courseapi/modules/course"
)

// memStore is an in-memory course.Store used by handler and cache tests.
type memStore struct {
	mu      sync.Mutex
	courses map[string]course.Course
	clock   time.Time
	gets    int
	err     error
}

func newMemStore() *memStore {
	return &memStore{
		courses: map[string]course.Course{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) List(context.Context) ([]course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]course.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b course.Course) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.err != nil {
		return course.Course{}, m.err
	}
	oid, err := course.ParseID(id)
	if err != nil {
		return course.Course{}, err
	}
	c, ok := m.courses[oid.Hex()]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (m *memStore) Create(_ context.Context, in course.Input) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return course.Course{}, m.err
	}
	c := course.New(in, m.tick())
	m.courses[c.ID.Hex()] = c
	return c, nil
}

func (m *memStore) Update(_ context.Context, id string, in course.Input) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return course.Course{}, m.err
	}
	oid, err := course.ParseID(id)
	if err != nil {
		return course.Course{}, err
	}
	c, ok := m.courses[oid.Hex()]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	c.Apply(in, m.tick())
	m.courses[oid.Hex()] = c
	return c, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	oid, err := course.ParseID(id)
	if err != nil {
		return err
	}
	if _, ok := m.courses[oid.Hex()]; !ok {
		return course.ErrNotFound
	}
	delete(m.courses, oid.Hex())
	return nil
}

func (m *memStore) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}
