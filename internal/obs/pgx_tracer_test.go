package obs

import "testing"

func TestDescribeSQL(t *testing.T) {
	name, verb := describeSQL("-- name: ListProducts :many\nselect id, name from products")
	if name != "ListProducts" || verb != "SELECT" {
		t.Fatalf("got name=%q verb=%q", name, verb)
	}
	name, verb = describeSQL("  update products set stock = stock - $1")
	if name != "" || verb != "UPDATE" {
		t.Fatalf("got name=%q verb=%q", name, verb)
	}
	if name, verb = describeSQL(""); name != "" || verb != "" {
		t.Fatalf("expected empty result, got %q %q", name, verb)
	}
}
