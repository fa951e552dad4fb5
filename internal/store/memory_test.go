package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

func TestMemoryUserEmailIsUnique(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := models.User{Name: "Amel", Email: "amel@example.com"}
	if err := m.Users().Create(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := models.User{Name: "Other", Email: "amel@example.com"}
	if err := m.Users().Create(ctx, &second); !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	other := models.User{Name: "Other", Email: "other@example.com"}
	if err := m.Users().Create(ctx, &other); err != nil {
		t.Fatalf("create: %v", err)
	}
	other.Email = "amel@example.com"
	if err := m.Users().Update(ctx, other); !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error on update, got %v", err)
	}
}

func TestMemoryLookupMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Properties().FindByID(context.Background(), "not-an-id"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for malformed id, got %v", err)
	}
	if _, err := m.PropertyBookings().Delete(context.Background(), "65f000000000000000000000"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for unknown id, got %v", err)
	}
}

func TestMemoryPropertiesPagination(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := models.Property{Name: "p", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := m.Properties().Create(ctx, &p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, _ := m.Properties().List(ctx, services.Page{})
	if len(all) != 5 || !all[0].CreatedAt.After(all[4].CreatedAt) {
		t.Fatalf("expected 5 properties newest first, got %d", len(all))
	}
	page, _ := m.Properties().List(ctx, services.Page{Page: 3, Limit: 2})
	if len(page) != 1 {
		t.Fatalf("expected 1 property on the last page, got %d", len(page))
	}
	empty, _ := m.Properties().List(ctx, services.Page{Page: 9, Limit: 2})
	if len(empty) != 0 {
		t.Fatalf("expected an empty page, got %d", len(empty))
	}

	huge := services.Page{Page: math.MaxInt64/2 + 2, Limit: 2}
	if huge.Skip() != math.MaxInt64 {
		t.Fatalf("expected Skip to saturate, got %d", huge.Skip())
	}
	empty, err := m.Properties().List(ctx, huge)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected an empty page for an overflowing offset, got %d (%v)", len(empty), err)
	}
	last, _ := m.Properties().List(ctx, services.Page{Page: 1, Limit: math.MaxInt64})
	if len(last) != 5 {
		t.Fatalf("expected every property for a huge limit, got %d", len(last))
	}
}

func TestMemoryCountOverlapping(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }

	b := models.GuesthouseBooking{CheckIn: day(1), CheckOut: day(4)}
	b.PropertyID = "p1"
	if err := m.GuesthouseBookings().Insert(ctx, &b); err != nil {
		t.Fatalf("insert: %v", err)
	}

	cases := []struct {
		name     string
		in, out  time.Time
		property string
		exclude  string
		want     int64
	}{
		{"inside", day(2), day(3), "p1", "", 1},
		{"back to back", day(4), day(6), "p1", "", 0},
		{"other property", day(2), day(3), "p2", "", 0},
		{"self excluded", day(2), day(3), "p1", b.ID.Hex(), 0},
	}
	for _, tc := range cases {
		got, err := m.GuesthouseBookings().CountOverlapping(ctx, tc.property, tc.in, tc.out, tc.exclude)
		if err != nil || got != tc.want {
			t.Fatalf("%s: expected %d, got %d (%v)", tc.name, tc.want, got, err)
		}
	}
}

func TestMemoryFavoritesUniquePerUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	f := models.Favorite{UserID: "u1", PropertyID: "p1"}
	if err := m.Favorites().Insert(ctx, &f); err != nil {
		t.Fatalf("insert: %v", err)
	}
	dup := models.Favorite{UserID: "u1", PropertyID: "p1"}
	if err := m.Favorites().Insert(ctx, &dup); !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	removed, err := m.Favorites().Remove(ctx, "u1", "p1")
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v (%v)", removed, err)
	}
	removed, _ = m.Favorites().Remove(ctx, "u1", "p1")
	if removed {
		t.Fatal("expected nothing to remove")
	}
}
