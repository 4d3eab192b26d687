package jsonfile_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"oldbaku_hotel/internal/domain"
	"oldbaku_hotel/internal/storage/jsonfile"
)

func pint64(v int64) *int64 { return &v }

func TestListBookings_MissingCollectionIsEmpty(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	got, err := s.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestAppendBooking_CreatesFreshDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "live")
	s := jsonfile.New(dir)

	if err := s.AppendBooking(context.Background(), domain.Booking{ID: "b-1"}); err != nil {
		t.Fatalf("append into fresh dir: %v", err)
	}
	got, err := s.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b-1" {
		t.Fatalf("unexpected bookings: %+v", got)
	}
}

func TestListRooms_MissingCollectionFails(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	if _, err := s.ListRooms(context.Background()); err == nil {
		t.Fatalf("expected error for missing rooms collection")
	}
}

func TestRooms_RoundTrip(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	ctx := context.Background()

	in := []domain.Room{
		{ID: 1, Title: map[string]string{"ru": "Стандарт", "en": "Standard"}, Image: "/img/1.jpg", Price: pint64(120)},
		{ID: 2, Title: map[string]string{"ru": "Люкс"}},
	}
	if err := s.SaveRooms(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.ListRooms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("unexpected rooms: %+v", out)
	}
	if out[0].Price == nil || *out[0].Price != 120 {
		t.Fatalf("price lost: %+v", out[0])
	}
	if out[1].Price != nil {
		t.Fatalf("expected optional price to stay absent")
	}
}

func TestAppendBooking_ThenList(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	ctx := context.Background()

	b := domain.Booking{ID: "b-1", Name: "Ana", Email: "a@x.com", Checkin: "2025-06-01", Checkout: "2025-06-03", Room: "1", Guests: 2}
	if err := s.AppendBooking(ctx, b); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := s.ListBookings(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].ID != "b-1" || out[0].Paid {
		t.Fatalf("unexpected bookings: %+v", out)
	}
}

func TestAppendBooking_ConcurrentNoLostUpdates(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.AppendBooking(ctx, domain.Booking{ID: fmt.Sprintf("b-%d", i)}); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	out, err := s.ListBookings(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != n {
		t.Fatalf("lost updates: want %d bookings, got %d", n, len(out))
	}
	seen := map[string]bool{}
	for _, b := range out {
		if seen[b.ID] {
			t.Fatalf("duplicate booking %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestMarkBookingPaid(t *testing.T) {
	s := jsonfile.New(t.TempDir())
	ctx := context.Background()

	if err := s.AppendBooking(ctx, domain.Booking{ID: "b-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	found, err := s.MarkBookingPaid(ctx, "b-1")
	if err != nil || !found {
		t.Fatalf("mark: found=%v err=%v", found, err)
	}
	// idempotent on redelivery
	found, err = s.MarkBookingPaid(ctx, "b-1")
	if err != nil || !found {
		t.Fatalf("re-mark: found=%v err=%v", found, err)
	}
	found, err = s.MarkBookingPaid(ctx, "nope")
	if err != nil || found {
		t.Fatalf("unknown id: found=%v err=%v", found, err)
	}

	out, _ := s.ListBookings(ctx)
	if len(out) != 1 || !out[0].Paid {
		t.Fatalf("expected paid booking, got %+v", out)
	}
}

func TestWrite_CorruptCollectionSurvivesFailedRead(t *testing.T) {
	dir := t.TempDir()
	s := jsonfile.New(dir)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListRooms(ctx); err == nil {
		t.Fatalf("expected decode error for corrupt collection")
	}
	// a full overwrite recovers it
	if err := s.SaveRooms(ctx, []domain.Room{{ID: 7}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.ListRooms(ctx)
	if err != nil || len(out) != 1 || out[0].ID != 7 {
		t.Fatalf("recovery failed: %v %+v", err, out)
	}
}
