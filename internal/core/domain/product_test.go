package domain

import "testing"

func TestAvailabilityFor(t *testing.T) {
	cases := []struct {
		stock int64
		want  Availability
	}{
		{0, AvailabilityOutOfStock},
		{1, AvailabilityLowStock},
		{5, AvailabilityLowStock},
		{10, AvailabilityLowStock},
		{11, AvailabilityInStock},
		{500, AvailabilityInStock},
	}
	for _, tc := range cases {
		if got := AvailabilityFor(tc.stock); got != tc.want {
			t.Errorf("AvailabilityFor(%d) = %s, want %s", tc.stock, got, tc.want)
		}
	}
}

func TestProduct_Availability(t *testing.T) {
	p := &Product{Name: "Zapato Azul", Stock: 8}
	if p.Availability() != AvailabilityLowStock {
		t.Fatalf("expected low_stock, got %s", p.Availability())
	}
}
