package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/models"
	"stays-backend/internal/notify"
	"stays-backend/internal/ratelimit"
	"stays-backend/internal/session"
	"stays-backend/internal/storage"
	"stays-backend/internal/store"
)

const testPassword = "Sunny-Beach-2024"

type testServer struct {
	router    *gin.Engine
	store     *store.Memory
	uploadDir string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	return newTestServerWithLimiter(t, ratelimit.NewMemory(100, time.Minute))
}

func newTestServerWithLimiter(t *testing.T, limiter ratelimit.Limiter) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := store.NewMemory()
	dir := t.TempDir()
	r := NewRouter(Deps{
		Store:     mem,
		Sessions:  session.NewManager("test-secret", time.Hour, false),
		Images:    storage.NewLocalStore(dir),
		Limiter:   limiter,
		Mailer:    notify.LogMailer{},
		ClientURL: "http://localhost:5173",
		UploadDir: dir,
	})
	return testServer{router: r, store: mem, uploadDir: dir}
}

func (s testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) addProperty(t *testing.T, typ models.PropertyType, price float64) models.Property {
	t.Helper()
	unit, _ := typ.PriceUnit()
	p := models.Property{
		OwnerID:   "owner-1",
		Type:      typ,
		Name:      "Dar Yasmine",
		Location:  "Hammamet",
		Phone:     "+21620000000",
		Price:     price,
		PriceUnit: unit,
		Amenities: models.StringList{"Wifi"},
	}
	if err := s.store.Properties().Create(context.Background(), &p); err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}

func (s testServer) register(t *testing.T, email string, role models.Role) (*http.Cookie, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Amel", "email": email, "password": testPassword, "role": string(role),
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a session cookie")
	}
	var resp struct {
		UserData models.UserData `json:"userData"`
	}
	decode(t, w, &resp)
	return cookie, resp.UserData.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func guesthouseBody(propertyID, checkIn, checkOut string) gin.H {
	return gin.H{
		"userID":      "u1",
		"propertyID":  propertyID,
		"fullname":    "Amel Ben Ali",
		"emailadress": "amel@example.com",
		"phonenumber": 20123456,
		"Nguests":     "2",
		"checkIn":     checkIn,
		"checkOut":    checkOut,
	}
}

func TestGuesthouseBookingFlow(t *testing.T) {
	s := newTestServer(t)
	p := s.addProperty(t, models.TypeGuesthouse, 50)

	w := s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", guesthouseBody(p.ID.Hex(), "2024-05-01", "2024-05-04"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Success bool                     `json:"success"`
		Data    models.GuesthouseBooking `json:"data"`
	}
	decode(t, w, &created)
	if !created.Success || created.Data.TotalPrice != 300 || created.Data.NumberOfNights != 3 {
		t.Fatalf("unexpected booking %+v", created.Data)
	}

	w = s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", guesthouseBody(p.ID.Hex(), "2024-05-03", "2024-05-05"), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for overlapping stay, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", guesthouseBody(p.ID.Hex(), "2024-06-05", "2024-06-01"), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed dates, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/booking/allBookedGuesthouses/u1", nil, nil)
	var list struct {
		BookedGuesthouses []models.GuesthouseBooking `json:"bookedGuesthouses"`
	}
	decode(t, w, &list)
	if w.Code != http.StatusOK || len(list.BookedGuesthouses) != 1 {
		t.Fatalf("expected one booking, got %d (%d)", len(list.BookedGuesthouses), w.Code)
	}

	w = s.do(t, http.MethodDelete, "/api/booking/deleteGuesthouseBooking/"+created.Data.ID.Hex(), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}
	w = s.do(t, http.MethodDelete, "/api/booking/deleteGuesthouseBooking/"+created.Data.ID.Hex(), nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestPropertyBookingRejectsMismatchedTotal(t *testing.T) {
	s := newTestServer(t)
	p := s.addProperty(t, models.TypeResidence, 500)

	body := gin.H{
		"userID":      "u1",
		"propertyID":  p.ID.Hex(),
		"fullname":    "Amel Ben Ali",
		"emailadress": "amel@example.com",
		"phonenumber": "20123456",
		"Nguests":     2,
		"totalprice":  1,
	}
	if w := s.do(t, http.MethodPost, "/api/booking/booked_ccb_res", body, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a wrong total, got %d: %s", w.Code, w.Body.String())
	}

	delete(body, "totalprice")
	if w := s.do(t, http.MethodPost, "/api/booking/booked_ccb_res", body, nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestQuoteEndpoint(t *testing.T) {
	s := newTestServer(t)
	p := s.addProperty(t, models.TypeGuesthouse, 40)

	w := s.do(t, http.MethodPost, "/api/booking/quote", gin.H{
		"propertyID": p.ID.Hex(), "checkIn": "2024-07-01", "checkOut": "2024-07-03", "Nguests": 1,
	}, nil)
	var resp struct {
		Data struct {
			NumberOfNights int     `json:"numberOfNights"`
			TotalPrice     float64 `json:"totalprice"`
		} `json:"data"`
	}
	decode(t, w, &resp)
	if w.Code != http.StatusOK || resp.Data.NumberOfNights != 2 || resp.Data.TotalPrice != 80 {
		t.Fatalf("unexpected quote %+v (%d)", resp.Data, w.Code)
	}
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"userId": "u1", "propertyID": "p1", "name": "Dar Yasmine", "price": "80", "amenities": `["Wifi","Pool"]`}

	w := s.do(t, http.MethodPost, "/api/favorites/toggle", body, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"result":"added"`) {
		t.Fatalf("expected added, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/favorites/u1", nil, nil)
	var list struct {
		Favorites []models.Favorite `json:"favorites"`
	}
	decode(t, w, &list)
	if len(list.Favorites) != 1 || len(list.Favorites[0].Amenities) != 2 {
		t.Fatalf("unexpected favorites %+v", list.Favorites)
	}

	w = s.do(t, http.MethodPost, "/api/favorites/toggle", body, nil)
	if !strings.Contains(w.Body.String(), `"result":"removed"`) {
		t.Fatalf("expected removed, got %s", w.Body.String())
	}
}

func TestSessionGuardsUserRoutes(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/api/user/data", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", w.Code)
	}

	cookie, id := s.register(t, "amel@example.com", models.RoleUser)
	w := s.do(t, http.MethodGet, "/api/user/data", nil, cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "amel@example.com") {
		t.Fatalf("expected user data, got %d: %s", w.Code, w.Body.String())
	}

	if w := s.do(t, http.MethodGet, "/api/user/DataUsers", nil, cookie); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	w = s.do(t, http.MethodPut, "/api/user/"+id, gin.H{"password": "abc"}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d: %s", w.Code, w.Body.String())
	}

	otherCookie, _ := s.register(t, "other@example.com", models.RoleUser)
	if w := s.do(t, http.MethodDelete, "/api/user/"+id, nil, otherCookie); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting another account, got %d", w.Code)
	}

	w = s.do(t, http.MethodDelete, "/api/user/"+id, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting own account, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "amel@example.com", models.RoleUser)

	w := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "amel@example.com", "password": "nope"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "AMEL@example.com", "password": testPassword}, nil)
	if w.Code != http.StatusOK || len(w.Result().Cookies()) == 0 {
		t.Fatalf("expected login with cookie, got %d", w.Code)
	}
}

func multipartProperty(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := part.Write([]byte("\x89PNG fake image")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestAddPropertyMultipart(t *testing.T) {
	s := newTestServer(t)
	cookie, ownerID := s.register(t, "owner@example.com", models.RoleOwner)

	fields := map[string]string{
		"OwnerId":   ownerID,
		"type":      "guesthouse",
		"name":      "Dar Yasmine",
		"location":  "Hammamet",
		"phone":     "+21620000000",
		"price":     "75",
		"priceUnit": "Night",
		"amenities": `["Wifi","Parking"]`,
	}
	body, contentType := multipartProperty(t, fields, "front.png")
	req := httptest.NewRequest(http.MethodPost, "/api/data-properties/AddProperty", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Property `json:"data"`
	}
	decode(t, w, &resp)
	if !strings.HasPrefix(resp.Data.Image, storage.UploadsPrefix+"/") || len(resp.Data.Amenities) != 2 {
		t.Fatalf("unexpected property %+v", resp.Data)
	}
	if _, err := os.Stat(filepath.Join(s.uploadDir, filepath.Base(resp.Data.Image))); err != nil {
		t.Fatalf("expected stored image: %v", err)
	}

	fields["priceUnit"] = "Month"
	body, contentType = multipartProperty(t, fields, "second.png")
	req = httptest.NewRequest(http.MethodPost, "/api/data-properties/AddProperty", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched price unit, got %d", w.Code)
	}
	entries, _ := os.ReadDir(s.uploadDir)
	if len(entries) != 1 {
		t.Fatalf("expected the rejected upload to be removed, found %d files", len(entries))
	}

	w = s.do(t, http.MethodGet, "/api/data-properties/"+ownerID, nil, nil)
	if !strings.Contains(w.Body.String(), `"OwnerProperties"`) || !strings.Contains(w.Body.String(), "Dar Yasmine") {
		t.Fatalf("unexpected owner listing %s", w.Body.String())
	}

	w = s.do(t, http.MethodDelete, "/api/data-properties/"+resp.Data.ID.Hex(), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}
	entries, _ = os.ReadDir(s.uploadDir)
	if len(entries) != 1 {
		t.Fatalf("expected the image to outlive the property, found %d files", len(entries))
	}
}

func TestGetPropertiesPagination(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		s.addProperty(t, models.TypeResidence, 100)
	}

	if w := s.do(t, http.MethodGet, "/api/data-properties?page=1", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when limit is missing, got %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/data-properties?page=2&limit=2", nil, nil)
	var resp struct {
		Properties []models.Property `json:"properties"`
	}
	decode(t, w, &resp)
	if w.Code != http.StatusOK || len(resp.Properties) != 1 {
		t.Fatalf("expected one property on page 2, got %d (%d)", len(resp.Properties), w.Code)
	}

	for _, query := range []string{
		"page=4611686018427387905&limit=2",
		"page=9223372036854775807&limit=1000",
	} {
		if w := s.do(t, http.MethodGet, "/api/data-properties?"+query, nil, nil); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", query, w.Code, w.Body.String())
		}
	}

	w = s.do(t, http.MethodGet, "/api/data-properties?page=1000000&limit=2", nil, nil)
	decode(t, w, &resp)
	if w.Code != http.StatusOK || len(resp.Properties) != 0 {
		t.Fatalf("expected an empty page past the end, got %d (%d)", len(resp.Properties), w.Code)
	}
}

func TestParsePaginationClampsLimit(t *testing.T) {
	page, err := parsePaginationParams("2", "1000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if page.Limit != maxPageLimit || page.Skip() != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %+v", maxPageLimit, page)
	}
}

func TestOwnerRoutesRequireOwnerRole(t *testing.T) {
	s := newTestServer(t)
	userCookie, _ := s.register(t, "guest@example.com", models.RoleUser)
	ownerCookie, ownerID := s.register(t, "owner@example.com", models.RoleOwner)

	if w := s.do(t, http.MethodGet, "/api/BookedPropertyOwner/allBookedProperties/"+ownerID, nil, userCookie); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a guest, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/BookedPropertyOwner/allBookedProperties/someone-else", nil, ownerCookie); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another owner's bookings, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/BookedPropertyOwner/allBookedProperties/"+ownerID, nil, ownerCookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d", w.Code)
	}
}

func TestParseAmenitiesField(t *testing.T) {
	cases := map[string]struct {
		in   []string
		want int
	}{
		"json":     {[]string{`["Wifi", "Pool"]`}, 2},
		"csv":      {[]string{"Wifi, Pool, Parking"}, 3},
		"repeated": {[]string{"Wifi", " ", "Pool"}, 2},
	}
	for name, tc := range cases {
		if got := parseAmenitiesField(tc.in); len(got) != tc.want {
			t.Fatalf("%s: expected %d amenities, got %v", name, tc.want, got)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/", nil, nil); w.Code != http.StatusOK || w.Body.String() != "api working" {
		t.Fatalf("unexpected home response %d %q", w.Code, w.Body.String())
	}
	w := s.do(t, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestBookingListsRejectBlankUserID(t *testing.T) {
	s := newTestServer(t)
	p := s.addProperty(t, models.TypeGuesthouse, 50)
	if w := s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", guesthouseBody(p.ID.Hex(), "2024-05-01", "2024-05-04"), nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	for _, path := range []string{
		"/api/booking/allBookedGuesthouses/%20",
		"/api/booking/allBookedUser/%20",
		"/api/favorites/%20",
		"/api/data-properties/%20",
	} {
		w := s.do(t, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", path, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "Amel") || strings.Contains(w.Body.String(), "Dar Yasmine") {
			t.Fatalf("%s: response leaked records: %s", path, w.Body.String())
		}
	}
}

func TestBookingRejectsFractionalGuests(t *testing.T) {
	s := newTestServer(t)
	p := s.addProperty(t, models.TypeResidence, 500)

	body := gin.H{
		"userID":      "u1",
		"propertyID":  p.ID.Hex(),
		"fullname":    "Amel Ben Ali",
		"emailadress": "amel@example.com",
		"phonenumber": "20123456",
		"Nguests":     2.7,
	}
	w := s.do(t, http.MethodPost, "/api/booking/booked_ccb_res", body, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "whole number") {
		t.Fatalf("expected 400 for a fractional guest count, got %d: %s", w.Code, w.Body.String())
	}

	gh := guesthouseBody(p.ID.Hex(), "2024-05-01", "2024-05-04")
	gh["Nguests"] = "1.5"
	if w := s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", gh, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a fractional guesthouse guest count, got %d", w.Code)
	}

	quote := gin.H{"propertyID": p.ID.Hex(), "Nguests": 3.2}
	if w := s.do(t, http.MethodPost, "/api/booking/quote", quote, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a fractional quote, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/booking/allBookedUser/u1", nil, nil)
	var list struct {
		BookedProperties []models.PropertyBooking `json:"bookedProperties"`
	}
	decode(t, w, &list)
	if len(list.BookedProperties) != 0 {
		t.Fatalf("expected nothing stored, got %d bookings", len(list.BookedProperties))
	}

	body["Nguests"] = 2.0
	if w := s.do(t, http.MethodPost, "/api/booking/booked_ccb_res", body, nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a whole guest count, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddPropertyRejectsGuestBeforeStoringImage(t *testing.T) {
	s := newTestServer(t)
	cookie, userID := s.register(t, "guest@example.com", models.RoleUser)

	body, contentType := multipartProperty(t, map[string]string{
		"OwnerId":   userID,
		"type":      "guesthouse",
		"name":      "Dar Yasmine",
		"location":  "Hammamet",
		"phone":     "+21620000000",
		"price":     "75",
		"priceUnit": "Night",
		"amenities": `["Wifi"]`,
	}, "front.png")
	req := httptest.NewRequest(http.MethodPost, "/api/data-properties/AddProperty", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a guest account, got %d: %s", w.Code, w.Body.String())
	}
	if entries, _ := os.ReadDir(s.uploadDir); len(entries) != 0 {
		t.Fatalf("expected no stored image, found %d files", len(entries))
	}
}

func TestDeletePropertyKeepsBookingsAndFavorites(t *testing.T) {
	s := newTestServer(t)
	cookie, ownerID := s.register(t, "owner@example.com", models.RoleOwner)
	p := s.addProperty(t, models.TypeGuesthouse, 50)
	p.OwnerID = ownerID
	if err := s.store.Properties().Update(context.Background(), p); err != nil {
		t.Fatalf("reassign owner: %v", err)
	}

	if w := s.do(t, http.MethodPost, "/api/booking/booked_guesthouse", guesthouseBody(p.ID.Hex(), "2024-05-01", "2024-05-04"), nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	fav := gin.H{"userId": "u1", "propertyID": p.ID.Hex(), "name": p.Name, "type": "guesthouse"}
	if w := s.do(t, http.MethodPost, "/api/favorites/toggle", fav, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on favorite, got %d: %s", w.Code, w.Body.String())
	}

	if w := s.do(t, http.MethodDelete, "/api/data-properties/"+p.ID.Hex(), nil, cookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d: %s", w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/booking/allBookedGuesthouses/u1", nil, nil)
	var bookings struct {
		BookedGuesthouses []models.GuesthouseBooking `json:"bookedGuesthouses"`
	}
	decode(t, w, &bookings)
	if len(bookings.BookedGuesthouses) != 1 || bookings.BookedGuesthouses[0].PropertyName != p.Name {
		t.Fatalf("expected the booking snapshot to survive, got %+v", bookings.BookedGuesthouses)
	}

	w = s.do(t, http.MethodGet, "/api/favorites/u1", nil, nil)
	var favorites struct {
		Favorites []models.Favorite `json:"favorites"`
	}
	decode(t, w, &favorites)
	if len(favorites.Favorites) != 1 {
		t.Fatalf("expected the favorite to survive, got %+v", favorites.Favorites)
	}
}

func TestAuthRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	s := newTestServerWithLimiter(t, ratelimit.NewMemory(2, time.Minute))

	var last int
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@example.com","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the peer is over the limit, got %d", last)
	}
}
