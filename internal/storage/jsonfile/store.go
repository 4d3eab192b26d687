// internal/storage/jsonfile/store.go
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"oldbaku_hotel/internal/domain"
)

const (
	roomsCollection    = "rooms"
	bookingsCollection = "bookings"
)

// Store keeps each collection as one JSON file under dir. Every mutation
// is read-whole, modify, overwrite-whole, held under that collection's
// mutex so concurrent appends cannot lose each other's writes.
type Store struct {
	dir        string
	roomsMu    sync.Mutex
	bookingsMu sync.Mutex
}

// New creates dir if needed so the first write on a fresh deployment
// does not fail at the temp file.
func New(dir string) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("data dir not created")
	}
	return &Store{dir: dir}
}

func (s *Store) ListRooms(ctx context.Context) ([]domain.Room, error) {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()
	var rooms []domain.Room
	if err := s.read(roomsCollection, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Store) SaveRooms(ctx context.Context, rooms []domain.Room) error {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()
	return s.write(roomsCollection, rooms)
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	s.bookingsMu.Lock()
	defer s.bookingsMu.Unlock()
	return s.readBookings()
}

func (s *Store) AppendBooking(ctx context.Context, b domain.Booking) error {
	s.bookingsMu.Lock()
	defer s.bookingsMu.Unlock()
	bookings, err := s.readBookings()
	if err != nil {
		return err
	}
	bookings = append(bookings, b)
	return s.write(bookingsCollection, bookings)
}

func (s *Store) MarkBookingPaid(ctx context.Context, id string) (bool, error) {
	s.bookingsMu.Lock()
	defer s.bookingsMu.Unlock()
	bookings, err := s.readBookings()
	if err != nil {
		return false, err
	}
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if bookings[i].Paid {
			return true, nil // already reconciled, nothing to write
		}
		bookings[i].Paid = true
		return true, s.write(bookingsCollection, bookings)
	}
	return false, nil
}

// readBookings treats a never-created collection as empty.
func (s *Store) readBookings() ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := s.read(bookingsCollection, &bookings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Booking{}, nil
		}
		return nil, err
	}
	return bookings, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) read(collection string, dst any) error {
	raw, err := os.ReadFile(s.path(collection))
	if err != nil {
		return fmt.Errorf("read %s: %w", collection, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// write replaces the collection atomically: marshal to a temp file in
// the same directory, then rename over the target. A failure anywhere
// leaves the previous contents intact.
func (s *Store) write(collection string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := os.Rename(name, s.path(collection)); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}
