package assert

import "testing"

func TestIsTrue(t *testing.T) {
	IsTrue(true, "never fires")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if err, ok := r.(error); !ok || err.Error() != "assertion failed: dt 5 exceeds 0.033" {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	IsTrue(false, "dt %v exceeds %v", 5, 0.033)
}
