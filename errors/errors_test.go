package errors

import (
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	cases := map[string]struct {
		kind    *Error
		err     error
		wantIs  bool
	}{
		"instance of the root error": {
			kind:   ErrNotFound,
			err:    ErrNotFound,
			wantIs: true,
		},
		"wrapped once": {
			kind:   ErrNotFound,
			err:    Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"wrapped multiple times": {
			kind:   ErrUnauthorized,
			err:    Wrap(Wrap(ErrUnauthorized, "no signature"), "cannot list"),
			wantIs: true,
		},
		"different root": {
			kind:   ErrNotFound,
			err:    Wrap(ErrUnauthorized, "gone"),
			wantIs: false,
		},
		"stdlib error": {
			kind:   ErrNotFound,
			err:    fmt.Errorf("not found"),
			wantIs: false,
		},
		"nil error": {
			kind:   ErrNotFound,
			err:    nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(Wrap(ErrAmount, "price"), "listing")
	const want = "listing: price: invalid amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("exploded")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}
