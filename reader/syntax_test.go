package reader

import (
	"strings"
	"testing"
)

func TestParseObjectNestingBounded(t *testing.T) {
	for _, data := range []string{
		strings.Repeat("[", 100000),
		strings.Repeat("<< /K ", 100000),
	} {
		if _, err := newParser([]byte(data)).ParseObject(); err == nil {
			t.Errorf("unbounded nesting %q... accepted", data[:8])
		}
	}
}

func TestParseObjectReasonableNesting(t *testing.T) {
	data := strings.Repeat("[", 20) + "42" + strings.Repeat("]", 20)
	obj, err := newParser([]byte(data)).ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		arr, ok := obj.(Array)
		if !ok || len(arr) != 1 {
			t.Fatalf("level %d: %T %v", i, obj, obj)
		}
		obj = arr[0]
	}
	if n, ok := obj.(Integer); !ok || n != 42 {
		t.Errorf("innermost = %v", obj)
	}
}
