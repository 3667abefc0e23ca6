package app_test

import (
	"context"
	"errors"
	"testing"

	"tripwise/internal/app"
	"tripwise/internal/domain"
)

func TestTripSetup_LoadDefaults(t *testing.T) {
	svc := app.NewTripSetupService(newFakeStore(), 0)
	got := svc.Load(context.Background(), "s1")
	if got != domain.DefaultTripSetup() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if got.Travelers != 1 || got.Currency != "USD" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestTripSetup_UpdateThenReload(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := app.NewTripSetupService(store, 0)

	first := domain.TripSetupPatch{Destination: ptr("Tokyo"), Travelers: ptr(2)}
	before, err := svc.Update(ctx, "s1", first)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	patch := domain.TripSetupPatch{
		FromDate:  ptr("2024-10-01"),
		ToDate:    ptr("2024-10-08"),
		Budget:    ptr("3,500"),
		Currency:  ptr("jpy"),
		UseNearMe: ptr(true),
	}
	if _, err := svc.Update(ctx, "s1", patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	// a fresh service simulates a page reload
	reloaded := app.NewTripSetupService(store, 0).Load(ctx, "s1")

	want := before
	want.FromDate, want.ToDate = "2024-10-01", "2024-10-08"
	want.Budget, want.Currency, want.UseNearMe = "3500", "JPY", true
	if reloaded != want {
		t.Fatalf("reload mismatch:\n got %+v\nwant %+v", reloaded, want)
	}

	if other := svc.Load(ctx, "s2"); other != domain.DefaultTripSetup() {
		t.Fatalf("sessions must not share records: %+v", other)
	}
}

func TestTripSetup_TravelersClamped(t *testing.T) {
	svc := app.NewTripSetupService(newFakeStore(), 0)
	got, err := svc.Update(context.Background(), "s1", domain.TripSetupPatch{Travelers: ptr(-3)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Travelers != 1 {
		t.Fatalf("travelers should clamp to 1, got %d", got.Travelers)
	}
}

func TestTripSetup_InvalidInputNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := app.NewTripSetupService(store, 0)
	_, _ = svc.Update(ctx, "s1", domain.TripSetupPatch{Budget: ptr("1200")})

	cases := []struct {
		name  string
		patch domain.TripSetupPatch
		field string
	}{
		{"budget text", domain.TripSetupPatch{Budget: ptr("lots")}, "budget"},
		{"negative budget", domain.TripSetupPatch{Budget: ptr("-5")}, "budget"},
		{"nan budget", domain.TripSetupPatch{Budget: ptr("NaN")}, "budget"},
		{"currency", domain.TripSetupPatch{Currency: ptr("doubloons")}, "currency"},
		{"iso but unsupported currency", domain.TripSetupPatch{Currency: ptr("chf")}, "currency"},
		{"date format", domain.TripSetupPatch{FromDate: ptr("10/01/2024")}, "fromDate"},
		{"date order", domain.TripSetupPatch{FromDate: ptr("2024-10-08"), ToDate: ptr("2024-10-01")}, "toDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sets := store.sets
			_, err := svc.Update(ctx, "s1", tc.patch)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
			if store.sets != sets {
				t.Fatal("invalid input must not be persisted")
			}
			if got := svc.Load(ctx, "s1"); got.Budget != "1200" || got.FromDate != "" {
				t.Fatalf("stored record changed: %+v", got)
			}
		})
	}
}

func TestTripSetup_EmptyBudgetAndLocation(t *testing.T) {
	ctx := context.Background()
	svc := app.NewTripSetupService(newFakeStore(), 0)
	got, err := svc.Update(ctx, "s1", domain.TripSetupPatch{Budget: ptr("  "), UserLocation: ptr(" Lisbon ")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Budget != "" || got.UserLocation == nil || *got.UserLocation != "Lisbon" {
		t.Fatalf("unexpected: %+v", got)
	}
	got, _ = svc.Update(ctx, "s1", domain.TripSetupPatch{UserLocation: ptr("")})
	if got.UserLocation != nil {
		t.Fatalf("blank location should clear, got %q", *got.UserLocation)
	}
}

func TestTripSetup_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := app.NewTripSetupService(store, 0)
	_, _ = svc.Update(ctx, "s1", domain.TripSetupPatch{Destination: ptr("Paris")})

	first := svc.Clear(ctx, "s1")
	second := svc.Clear(ctx, "s1")
	if first != domain.DefaultTripSetup() || second != first {
		t.Fatalf("clear should return defaults both times: %+v %+v", first, second)
	}
	if _, ok := store.m["tripSetup:s1"]; ok {
		t.Fatal("clear must remove the persisted entry")
	}
	if got := svc.Load(ctx, "s1"); got != domain.DefaultTripSetup() {
		t.Fatalf("load after clear: %+v", got)
	}
}

func TestTripSetup_CorruptRecordFallsBack(t *testing.T) {
	store := newFakeStore()
	store.m["tripSetup:s1"] = []byte(`{"travelers":"many"`)
	svc := app.NewTripSetupService(store, 0)
	if got := svc.Load(context.Background(), "s1"); got != domain.DefaultTripSetup() {
		t.Fatalf("corrupt record should read as defaults, got %+v", got)
	}
}

func TestTripSetup_StorageUnavailable(t *testing.T) {
	ctx := context.Background()

	nilSvc := app.NewTripSetupService(nil, 0)
	got, err := nilSvc.Update(ctx, "s1", domain.TripSetupPatch{Destination: ptr("Bali")})
	if err != nil || got.Destination != "Bali" {
		t.Fatalf("update without storage should still merge: %+v %v", got, err)
	}
	if nilSvc.Load(ctx, "s1") != domain.DefaultTripSetup() {
		t.Fatal("load without storage should return defaults")
	}
	nilSvc.Clear(ctx, "s1")

	broken := newFakeStore()
	broken.failGet, broken.failSet = true, true
	svc := app.NewTripSetupService(broken, 0)
	if got, err := svc.Update(ctx, "s1", domain.TripSetupPatch{Travelers: ptr(3)}); err != nil || got.Travelers != 3 {
		t.Fatalf("failed write should be logged, not returned: %+v %v", got, err)
	}
	if svc.Load(ctx, "s1") != domain.DefaultTripSetup() {
		t.Fatal("failed read should return defaults")
	}
}

func TestNormalizePatch_CurrencyAndMarkup(t *testing.T) {
	p, err := app.NormalizePatch(domain.TripSetupPatch{
		Currency:     ptr(" eur "),
		Destination:  ptr("<b>Lisbon</b> & Porto"),
		UserLocation: ptr("<script>alert(1)</script>Berlin"),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if *p.Currency != "EUR" {
		t.Fatalf("currency not canonical: %q", *p.Currency)
	}
	if *p.Destination != "Lisbon & Porto" {
		t.Fatalf("markup not stripped: %q", *p.Destination)
	}
	if *p.UserLocation != "Berlin" {
		t.Fatalf("script not stripped: %q", *p.UserLocation)
	}
}

func TestNormalizePatch_EncodedMarkupStaysStripped(t *testing.T) {
	cases := map[string]string{
		"&lt;script&gt;alert(1)&lt;/script&gt;Rome":                 "Rome",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;Oslo": "Oslo",
		"&lt;b&gt;Nice&lt;/b&gt;":                                   "Nice",
		"Lisbon &amp; Porto":                                        "Lisbon & Porto",
		"Sao Paulo < Rio":                                           "Sao Paulo < Rio",
	}
	for in, want := range cases {
		p, err := app.NormalizePatch(domain.TripSetupPatch{Destination: ptr(in), UserLocation: ptr(in)})
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if *p.Destination != want || *p.UserLocation != want {
			t.Fatalf("%q: got destination=%q location=%q, want %q", in, *p.Destination, *p.UserLocation, want)
		}
	}
}

func TestNormalizePatch_FromDateReportedFirst(t *testing.T) {
	for i := 0; i < 20; i++ {
		_, err := app.NormalizePatch(domain.TripSetupPatch{FromDate: ptr("01/10/2024"), ToDate: ptr("08/10/2024")})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != "fromDate" {
			t.Fatalf("expected fromDate validation error, got %v", err)
		}
	}
}
