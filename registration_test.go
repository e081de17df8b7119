// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
)

func nopHandler(context.Context, *Values) error { return nil }

func TestDiscover(t *testing.T) {
	bindings := []Binding{
		{Name: "do_deploy_prod", Handler: nopHandler, Doc: "deploy to prod"},
		{Name: "do_build", Handler: nopHandler, Doc: "build the project"},
		{Name: "helper", Handler: nopHandler},     // no prefix
		{Name: "do_version", Handler: nopHandler}, // reserved
	}
	reg, err := discover(bindings, "do_", map[string]bool{"do_version": true})
	if err != nil {
		t.Fatal(err)
	}
	got := reg.names()
	want := []string{"build", "deploy_prod"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if reg.specs["build"].Doc() != "build the project" {
		t.Errorf("doc not carried onto spec: %q", reg.specs["build"].Doc())
	}
}

func TestDiscoverCustomPrefix(t *testing.T) {
	reg, err := discover([]Binding{
		{Name: "cmd_sync", Handler: nopHandler},
		{Name: "do_sync", Handler: nopHandler},
	}, "cmd_", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"sync"}, reg.names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverInvalidNames(t *testing.T) {
	for _, name := range []string{
		"do_",       // empty after prefix
		"do_1bad",   // starts with a digit
		"do_bad-no", // invalid character
		"do___",     // only underscores
	} {
		_, err := discover([]Binding{{Name: name, Handler: nopHandler}}, "do_", nil)
		var ierr *InvalidNameError
		if !errors.As(err, &ierr) {
			t.Errorf("%q: got %v, want InvalidNameError", name, err)
		}
	}
}

func TestDiscoverDuplicate(t *testing.T) {
	_, err := discover([]Binding{
		{Name: "do_build", Handler: nopHandler},
		{Name: "do_build", Handler: nopHandler},
	}, "do_", nil)
	var derr *DuplicateCommandError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want DuplicateCommandError", err)
	}
	if derr.Name != "build" {
		t.Errorf("got name %q, want %q", derr.Name, "build")
	}
}

func TestDiscoverNilHandler(t *testing.T) {
	_, err := discover([]Binding{{Name: "do_build"}}, "do_", nil)
	if err == nil {
		t.Fatal("got nil, want error for nil handler")
	}
}

func TestDiscoverAggregatesErrors(t *testing.T) {
	reg, err := discover([]Binding{
		{Name: "do_ok", Handler: nopHandler},
		{Name: "do_1bad", Handler: nopHandler},
		{Name: "do_ok", Handler: nopHandler}, // duplicate
		{Name: "do_also-bad", Handler: nopHandler},
	}, "do_", nil)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("got %v, want *multierror.Error", err)
	}
	if len(merr.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(merr.Errors), merr)
	}
	// The typed kinds stay visible through the aggregate.
	var ierr *InvalidNameError
	if !errors.As(err, &ierr) {
		t.Errorf("InvalidNameError not detectable through %v", err)
	}
	var derr *DuplicateCommandError
	if !errors.As(err, &derr) {
		t.Errorf("DuplicateCommandError not detectable through %v", err)
	}
	// The valid binding still registers.
	if diff := cmp.Diff([]string{"ok"}, reg.names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverOptionsOrder(t *testing.T) {
	common := Group(
		Opt("-v", "--verbose"),
		Opt("-q", "--quiet"),
	)
	reg, err := discover([]Binding{
		{Name: "do_build", Handler: nopHandler, Options: []Option{common, Opt("-o", "--out")}},
	}, "do_", nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, o := range reg.specs["build"].options {
		got = append(got, o.Name())
	}
	want := []string{"verbose", "quiet", "out"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestValidIdentifier(t *testing.T) {
	for _, test := range []struct {
		s    string
		want bool
	}{
		{"", false},
		{"a", true},
		{"_a", true},
		{"a1", true},
		{"1a", false},
		{"a-b", false},
		{"a b", false},
		{"über", true},
		{"deploy_prod", true},
	} {
		if got := validIdentifier(test.s); got != test.want {
			t.Errorf("%q: got %t, want %t", test.s, got, test.want)
		}
	}
}
