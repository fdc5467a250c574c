package domain

import "testing"

func TestCreateProductInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      CreateProductInput
		wantErr bool
	}{
		{"ok", CreateProductInput{Name: "Widget", Price: 5}, false},
		{"zero price ok", CreateProductInput{Name: "Widget", Price: 0}, false},
		{"empty name", CreateProductInput{Name: "", Price: 1}, true},
		{"negative price", CreateProductInput{Name: "Widget", Price: -0.01}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate(%+v) = %v, wantErr=%v", tc.in, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateProductInputValidate(t *testing.T) {
	name := "Widget"
	empty := ""
	neg := -1.0
	ok := 2.5

	cases := []struct {
		name    string
		in      UpdateProductInput
		wantErr bool
	}{
		{"all nil ok", UpdateProductInput{}, false},
		{"name set ok", UpdateProductInput{Name: &name}, false},
		{"price set ok", UpdateProductInput{Price: &ok}, false},
		{"empty name", UpdateProductInput{Name: &empty}, true},
		{"negative price", UpdateProductInput{Price: &neg}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate(%+v) = %v, wantErr=%v", tc.in, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateProductInputEmpty(t *testing.T) {
	if !(UpdateProductInput{}).Empty() {
		t.Fatal("zero input should be Empty")
	}
	p := 1.0
	if (UpdateProductInput{Price: &p}).Empty() {
		t.Fatal("input with price should not be Empty")
	}
}
