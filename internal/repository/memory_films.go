package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cinetick/cinetick/internal/domain"
)

// MemoryFilmRepository keeps the screening catalog in process memory. It is
// the catalog used in dev mode (no database flag) and by the concurrency
// tests. Each screening carries its own mutex so that TryReserve and Release
// serialize per screening: bookings on unrelated screenings never contend.
type MemoryFilmRepository struct {
	mu         sync.RWMutex
	films      map[string]*domain.Film
	order      []string
	screenings map[domain.ScreeningKey]*memoryScreening
}

type memoryScreening struct {
	mu        sync.Mutex
	screening domain.Screening
	taken     map[domain.SeatKey]bool
}

func NewMemoryFilmRepository() *MemoryFilmRepository {
	return &MemoryFilmRepository{
		films:      make(map[string]*domain.Film),
		screenings: make(map[domain.ScreeningKey]*memoryScreening),
	}
}

func (m *MemoryFilmRepository) Create(_ context.Context, film *domain.Film) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.films[film.ID]; ok {
		return domain.ErrFilmAlreadyExists
	}

	stored := *film
	stored.Schedule = nil

	for _, screening := range film.Schedule {
		screening.FilmID = film.ID
		stored.Schedule = append(stored.Schedule, screening)

		key := domain.ScreeningKey{FilmID: film.ID, ScreeningID: screening.ID}
		taken := make(map[domain.SeatKey]bool, len(screening.Taken))
		for _, seat := range screening.Taken {
			taken[seat] = true
		}

		m.screenings[key] = &memoryScreening{screening: screening, taken: taken}
	}

	m.films[film.ID] = &stored
	m.order = append(m.order, film.ID)

	return nil
}

func (m *MemoryFilmRepository) GetAll(_ context.Context, filters domain.FilmFilters) ([]*domain.Film, *domain.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*domain.Film, 0, len(m.films))
	for _, id := range m.order {
		film := m.films[id]
		if filters.Term == "" || strings.Contains(strings.ToLower(film.Title), strings.ToLower(filters.Term)) {
			matched = append(matched, film)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		less := matched[i].Title < matched[j].Title
		if filters.SortColumn() != "title" {
			less = matched[i].ID < matched[j].ID
		}
		if filters.SortDirection() == "DESC" {
			return !less
		}
		return less
	})

	metadata := domain.NewMetadata(len(matched), filters.Page, filters.PageSize)

	start := filters.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filters.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*domain.Film, 0, end-start)
	for _, film := range matched[start:end] {
		page = append(page, m.snapshotFilm(film))
	}

	return page, metadata, nil
}

func (m *MemoryFilmRepository) GetById(_ context.Context, id string) (*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	film, ok := m.films[id]
	if !ok {
		return nil, domain.ErrFilmNotFound
	}

	return m.snapshotFilm(film), nil
}

func (m *MemoryFilmRepository) GetScreening(_ context.Context, key domain.ScreeningKey) (*domain.Screening, error) {
	m.mu.RLock()
	entry, ok := m.screenings[key]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.ErrScreeningNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.snapshot(), nil
}

// TryReserve holds the screening's lock across the whole check-and-insert,
// so the batch commits all-or-nothing with respect to concurrent calls.
func (m *MemoryFilmRepository) TryReserve(_ context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	m.mu.RLock()
	entry, ok := m.screenings[key]
	m.mu.RUnlock()

	if !ok {
		return domain.ErrScreeningNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	var conflicts []domain.SeatKey
	for _, seat := range seats {
		if entry.taken[seat] {
			conflicts = append(conflicts, seat)
		}
	}

	if len(conflicts) > 0 {
		return &domain.ReservationConflictError{Screening: key, Seats: conflicts}
	}

	for _, seat := range seats {
		entry.taken[seat] = true
	}

	return nil
}

func (m *MemoryFilmRepository) Release(_ context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	m.mu.RLock()
	entry, ok := m.screenings[key]
	m.mu.RUnlock()

	if !ok {
		return domain.ErrScreeningNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	for _, seat := range seats {
		delete(entry.taken, seat)
	}

	return nil
}

func (m *MemoryFilmRepository) snapshotFilm(film *domain.Film) *domain.Film {
	snapshot := *film
	snapshot.Schedule = make([]domain.Screening, 0, len(film.Schedule))

	for _, screening := range film.Schedule {
		key := domain.ScreeningKey{FilmID: film.ID, ScreeningID: screening.ID}

		entry := m.screenings[key]
		entry.mu.Lock()
		snapshot.Schedule = append(snapshot.Schedule, *entry.snapshot())
		entry.mu.Unlock()
	}

	return &snapshot
}

// snapshot copies the screening with its current taken set. Callers must
// hold the screening's mutex.
func (e *memoryScreening) snapshot() *domain.Screening {
	screening := e.screening
	screening.Taken = make([]domain.SeatKey, 0, len(e.taken))

	for seat := range e.taken {
		screening.Taken = append(screening.Taken, seat)
	}

	sort.Slice(screening.Taken, func(i, j int) bool {
		if screening.Taken[i].Row != screening.Taken[j].Row {
			return screening.Taken[i].Row < screening.Taken[j].Row
		}
		return screening.Taken[i].Seat < screening.Taken[j].Seat
	})

	return &screening
}
