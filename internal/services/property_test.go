package services_test

import (
	"context"
	"errors"
	"testing"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

var (
	owner   = services.Actor{UserID: "owner-1", Role: models.RoleOwner}
	rival   = services.Actor{UserID: "owner-2", Role: models.RoleOwner}
	admin   = services.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	visitor = services.Actor{UserID: "owner-1", Role: models.RoleUser}
)

func validInput() services.PropertyInput {
	return services.PropertyInput{
		Type:      models.TypeGuesthouse,
		Name:      " Dar Yasmine ",
		Location:  "Hammamet",
		Phone:     "+21620000000",
		Price:     floatPtr(75),
		PriceUnit: models.UnitNight,
		Amenities: []string{"Wifi", " "},
	}
}

func TestAddProperty(t *testing.T) {
	f := newFixture()
	properties := services.NewPropertyService(f.store.Properties())
	ctx := context.Background()

	p, err := properties.Add(ctx, owner, validInput())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.OwnerID != "owner-1" || p.Name != "Dar Yasmine" || p.Image != models.DefaultPropertyImage || len(p.Amenities) != 1 {
		t.Fatalf("unexpected property %+v", p)
	}

	if _, err := properties.Add(ctx, visitor, validInput()); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a guest account, got %v", err)
	}
	in := validInput()
	in.OwnerID = "owner-2"
	if _, err := properties.Add(ctx, owner, in); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden listing for another owner, got %v", err)
	}
	if _, err := properties.Add(ctx, admin, in); err != nil {
		t.Fatalf("admin should list for any owner: %v", err)
	}

	in = validInput()
	in.PriceUnit = models.UnitMonth
	var validationErr *services.ValidationError
	if _, err := properties.Add(ctx, owner, in); !errors.As(err, &validationErr) || validationErr.Field != "priceUnit" {
		t.Fatalf("expected priceUnit ValidationError, got %v", err)
	}
}

func TestUpdatePropertyPartialEdit(t *testing.T) {
	f := newFixture()
	properties := services.NewPropertyService(f.store.Properties())
	p := f.addProperty(t, models.TypeGuesthouse, 50)
	p.Image = "uploads/front.png"
	if err := f.store.Properties().Update(context.Background(), p); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	got, err := properties.Update(context.Background(), owner, p.ID.Hex(), services.PropertyPatch{
		Price: floatPtr(65),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Price != 65 || got.Name != p.Name || got.Location != p.Location || got.Phone != p.Phone || len(got.Amenities) != 1 {
		t.Fatalf("expected only the price to change, got %+v", got)
	}
	if got.Type != models.TypeGuesthouse || got.Image != "uploads/front.png" || got.PriceUnit != p.PriceUnit {
		t.Fatalf("type, unit and image must not change, got %+v", got)
	}

	stored, err := properties.Get(context.Background(), p.ID.Hex())
	if err != nil || stored.Price != 65 {
		t.Fatalf("expected the stored price to change, got %+v (%v)", stored, err)
	}

	got, err = properties.Update(context.Background(), admin, p.ID.Hex(), services.PropertyPatch{
		Name:      strPtr(" Dar Nour "),
		Amenities: []string{},
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got.Name != "Dar Nour" || len(got.Amenities) != 0 || got.Price != 65 {
		t.Fatalf("unexpected admin edit %+v", got)
	}
}

func TestUpdatePropertyRejections(t *testing.T) {
	f := newFixture()
	properties := services.NewPropertyService(f.store.Properties())
	p := f.addProperty(t, models.TypeResidence, 500)
	ctx := context.Background()

	if _, err := properties.Update(ctx, rival, p.ID.Hex(), services.PropertyPatch{Price: floatPtr(1)}); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another owner, got %v", err)
	}

	var validationErr *services.ValidationError
	if _, err := properties.Update(ctx, owner, p.ID.Hex(), services.PropertyPatch{Name: strPtr("  ")}); !errors.As(err, &validationErr) || validationErr.Field != "name" {
		t.Fatalf("expected name ValidationError, got %v", err)
	}
	if _, err := properties.Update(ctx, owner, p.ID.Hex(), services.PropertyPatch{Price: floatPtr(-1)}); !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for a negative price, got %v", err)
	}

	stored, _ := properties.Get(ctx, p.ID.Hex())
	if stored.Name != "Dar Yasmine" || stored.Price != 500 {
		t.Fatalf("rejected edits must not persist, got %+v", stored)
	}

	if _, err := properties.Update(ctx, owner, "000000000000000000000000", services.PropertyPatch{Price: floatPtr(1)}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePropertyLeavesBookingsAndFavorites(t *testing.T) {
	f := newFixture()
	properties := services.NewPropertyService(f.store.Properties())
	favorites := services.NewFavoritesService(f.store.Favorites())
	p := f.addProperty(t, models.TypeGuesthouse, 50)
	ctx := context.Background()

	booking, err := f.bookings.CreateGuesthouseBooking(ctx, services.GuesthouseBookingInput{
		UserID:     "u1",
		PropertyID: p.ID.Hex(),
		Guest:      guest(2),
		CheckIn:    "2024-05-01",
		CheckOut:   "2024-05-04",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := favorites.Toggle(ctx, "u1", p.ID.Hex(), models.FavoriteSnapshot{Name: p.Name}); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	if _, err := properties.Delete(ctx, rival, p.ID.Hex()); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another owner, got %v", err)
	}
	if _, err := properties.Delete(ctx, owner, p.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := properties.Get(ctx, p.ID.Hex()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected the property gone, got %v", err)
	}

	list, err := f.bookings.ListGuesthouseBookingsByUser(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected the booking to remain, got %d (%v)", len(list), err)
	}
	if list[0].ID != booking.ID || list[0].PropertyName != "Dar Yasmine" {
		t.Fatalf("expected the snapshot to be kept, got %+v", list[0])
	}
	favs, err := favorites.List(ctx, "u1")
	if err != nil || len(favs) != 1 {
		t.Fatalf("expected the favorite to remain, got %d (%v)", len(favs), err)
	}
}

func TestBookingListsRequireKey(t *testing.T) {
	f := newFixture()
	p := f.addProperty(t, models.TypeResidence, 500)
	if _, err := f.bookings.CreatePropertyBooking(context.Background(), services.PropertyBookingInput{
		UserID:     "u1",
		PropertyID: p.ID.Hex(),
		Guest:      guest(2),
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	var validationErr *services.ValidationError
	if list, err := f.bookings.ListPropertyBookingsByUser(context.Background(), " "); !errors.As(err, &validationErr) || len(list) != 0 {
		t.Fatalf("expected ValidationError and no bookings, got %d (%v)", len(list), err)
	}
	if list, err := f.bookings.ListPropertyBookingsByOwner(context.Background(), ""); !errors.As(err, &validationErr) || len(list) != 0 {
		t.Fatalf("expected ValidationError and no bookings, got %d (%v)", len(list), err)
	}
}
