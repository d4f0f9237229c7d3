package dbresult

import (
	"context"
	"errors"
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
)

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

func kindOf[T any](r Result[T]) Kind { return r.Kind() }

func TestWrap_ErrorBecomesFailure(t *testing.T) {
	res := Wrap(context.Background(), quietLogger(), "insert", func(context.Context) (int64, error) {
		return 0, errors.New("connection refused")
	})
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %s", res.Kind())
	}
}

func TestWrap_PanicBecomesFailure(t *testing.T) {
	res := Wrap(context.Background(), quietLogger(), "insert", func(context.Context) (int64, error) {
		panic("driver exploded")
	})
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %s", res.Kind())
	}
}

func TestWrap_ValueBecomesSingle(t *testing.T) {
	res := Wrap(context.Background(), quietLogger(), "insert", func(context.Context) (int64, error) {
		return 42, nil
	})
	got := Match(res,
		func() int64 { return -1 },
		func(v int64) int64 { return v },
		func([]int64) int64 { return -2 },
		func() int64 { return -3 },
	)
	if got != 42 {
		t.Fatalf("expected single 42, got %d (kind %s)", got, res.Kind())
	}
}

func TestWrapMany_NilBecomesEmptyCollection(t *testing.T) {
	res := WrapMany(context.Background(), quietLogger(), "list", func(context.Context) ([]string, error) {
		return nil, nil
	})
	if res.Kind() != KindMany {
		t.Fatalf("expected many, got %s", res.Kind())
	}
	n := Match(res,
		func() int { return -1 },
		func(string) int { return -1 },
		func(vs []string) int {
			if vs == nil {
				return -2
			}
			return len(vs)
		},
		func() int { return -1 },
	)
	if n != 0 {
		t.Fatalf("expected empty non-nil collection, got %d", n)
	}
}

func TestWrapMany_ErrorBecomesFailure(t *testing.T) {
	res := WrapMany(context.Background(), quietLogger(), "list", func(context.Context) ([]string, error) {
		return nil, errors.New("timeout")
	})
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %s", res.Kind())
	}
}

func TestSingleOrEmpty(t *testing.T) {
	cases := []struct {
		name string
		in   Result[Option[string]]
		want Kind
	}{
		{name: "absent projection", in: Single(None[string]()), want: KindEmpty},
		{name: "present projection", in: Single(Some("row")), want: KindSingle},
		{name: "failure passes through", in: Failure[Option[string]](), want: KindFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := kindOf(SingleOrEmpty(tc.in)); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSingleOrEmpty_KeepsValue(t *testing.T) {
	res := SingleOrEmpty(Single(Some("row")))
	got := Match(res,
		func() string { return "failure" },
		func(v string) string { return v },
		func([]string) string { return "many" },
		func() string { return "empty" },
	)
	if got != "row" {
		t.Fatalf("expected row, got %s", got)
	}
}

func TestWrapRow(t *testing.T) {
	found := WrapRow(context.Background(), quietLogger(), "get", func(context.Context) (Option[int], error) {
		return Some(7), nil
	})
	if found.Kind() != KindSingle {
		t.Fatalf("expected single, got %s", found.Kind())
	}

	missing := WrapRow(context.Background(), quietLogger(), "get", func(context.Context) (Option[int], error) {
		return None[int](), nil
	})
	if missing.Kind() != KindEmpty {
		t.Fatalf("expected empty, got %s", missing.Kind())
	}

	failed := WrapRow(context.Background(), quietLogger(), "get", func(context.Context) (Option[int], error) {
		return None[int](), errors.New("boom")
	})
	if failed.Kind() != KindFailure {
		t.Fatalf("expected failure, got %s", failed.Kind())
	}
}

func TestMapSingle_SkipsFailure(t *testing.T) {
	called := false
	res := MapSingle(Failure[int](), func(v int) string {
		called = true
		return "x"
	})
	if called {
		t.Fatal("mapper must not be called on failure")
	}
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %s", res.Kind())
	}
}

func TestMapSingle_KeepsShape(t *testing.T) {
	double := func(v int) int { return v * 2 }

	if got := MapSingle(Empty[int](), double).Kind(); got != KindEmpty {
		t.Fatalf("expected empty, got %s", got)
	}

	got := Match(MapSingle(Single(21), double),
		func() int { return -1 },
		func(v int) int { return v },
		func([]int) int { return -1 },
		func() int { return -1 },
	)
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestMapMany(t *testing.T) {
	res := MapMany(Many([]int{1, 2, 3}), func(v int) int { return v * 10 })
	got := Match(res,
		func() []int { return nil },
		func(int) []int { return nil },
		func(vs []int) []int { return vs },
		func() []int { return nil },
	)
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Fatalf("unexpected mapped values: %v", got)
	}

	if !MapMany(Failure[int](), func(v int) int { return v }).IsFailure() {
		t.Fatal("failure must pass through MapMany")
	}
}

func TestZeroValueIsFailure(t *testing.T) {
	var r Result[string]
	if !r.IsFailure() {
		t.Fatalf("zero value must be failure, got %s", r.Kind())
	}
}
