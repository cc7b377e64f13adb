package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/course"
)

// fakeStore mimics the bookings table: serialized transactions with rollback,
// the (user, course) unique constraint and the course foreign key.
type fakeStore struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	bookings map[string]*Booking
	courses  map[string]*course.Course
	users    map[string]string // id -> username

	// now stamps created_at; a fixed clock forces timestamp ties.
	now func() time.Time
	// raceWindow makes the duplicate pre-check miss, as a concurrent insert would.
	raceWindow bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[string]*Booking),
		courses:  make(map[string]*course.Course),
		users:    make(map[string]string),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *fakeStore) addCourse(c *course.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c
}

func (s *fakeStore) deleteCourse(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	for bid, b := range s.bookings {
		if b.CourseID == id {
			delete(s.bookings, bid)
		}
	}
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// fakeRepository implements Repository over a fakeStore.
type fakeRepository struct {
	store *fakeStore
	inTx  bool
}

func (r *fakeRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	s := r.store
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[string]*Booking, len(s.bookings))
	for id, b := range s.bookings {
		cp := *b
		snapshot[id] = &cp
	}
	s.mu.Unlock()

	if err := fn(&fakeRepository{store: s, inTx: true}); err != nil {
		s.mu.Lock()
		s.bookings = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// resolve fills the joined columns. Caller holds mu.
func (r *fakeRepository) resolve(b *Booking) *Booking {
	cp := *b
	if c, ok := r.store.courses[b.CourseID]; ok {
		cp.CourseTitle = c.Title
		cp.CourseStartDate = c.StartDate
		cp.CourseEndDate = c.EndDate
	}
	cp.Username = r.store.users[b.UserID]
	return &cp
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[b.CourseID]; !ok {
		return ErrCourseNotFound
	}
	for _, existing := range s.bookings {
		if existing.UserID == b.UserID && existing.CourseID == b.CourseID {
			return ErrDuplicateBooking
		}
	}
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.resolve(b), nil
}

func (r *fakeRepository) LockByID(ctx context.Context, id string) (*Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepository) Update(_ context.Context, b *Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.courses[b.CourseID]; !ok {
		return ErrCourseNotFound
	}
	for _, existing := range s.bookings {
		if existing.ID != b.ID && existing.UserID == b.UserID && existing.CourseID == b.CourseID {
			return ErrDuplicateBooking
		}
	}
	b.UpdatedAt = time.Now().UTC()
	stored := s.bookings[b.ID]
	stored.CourseID = b.CourseID
	stored.Name = b.Name
	stored.Email = b.Email
	stored.Message = b.Message
	stored.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (r *fakeRepository) ExistsForUserCourse(_ context.Context, userID, courseID, excludeBookingID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raceWindow {
		return false, nil
	}
	for _, b := range s.bookings {
		if b.ID != excludeBookingID && b.UserID == userID && b.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) sorted(match func(*Booking) bool) []*Booking {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Booking
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, r.resolve(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]*Booking, error) {
	return r.sorted(func(b *Booking) bool { return b.UserID == userID }), nil
}

func (r *fakeRepository) ListRecent(_ context.Context, limit int) ([]*Booking, error) {
	all := r.sorted(func(*Booking) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeRepository) CountByStatus(_ context.Context) (map[Status]int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[Status]int)
	for _, b := range s.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

// fakeCourses computes booked counts from the store, like the course query does.
type fakeCourses struct {
	store *fakeStore
}

func (f *fakeCourses) withCount(c *course.Course) *course.Course {
	cp := *c
	cp.BookedCount = 0
	for _, b := range f.store.bookings {
		if b.CourseID == c.ID && b.Status.HoldsSeat() {
			cp.BookedCount++
		}
	}
	return &cp
}

func (f *fakeCourses) GetByID(_ context.Context, id string) (*course.Course, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c, ok := f.store.courses[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	return f.withCount(c), nil
}

func (f *fakeCourses) ListAll(_ context.Context) ([]*course.Course, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]*course.Course, 0, len(f.store.courses))
	for _, c := range f.store.courses {
		out = append(out, f.withCount(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}
