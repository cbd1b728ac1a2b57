package services

import (
	"errors"
	"strings"
	"testing"

	"chapsplit/internal/history"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "export", "ffmpeg", "segment failed", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("wrapped error should match marker")
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped error should match cause")
	}
	for _, want := range []string{"export", "ffmpeg", "segment failed"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "probe", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("nil marker should default to transient")
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestFailureOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want history.Outcome
	}{
		{Wrap(ErrValidation, "scan", "", "unsupported extension", nil), history.OutcomeSkipped},
		{Wrap(ErrNotFound, "transcript", "", "missing srt", nil), history.OutcomeSkipped},
		{Wrap(ErrConfiguration, "config", "", "bad device", nil), history.OutcomeSkipped},
		{Wrap(ErrExternalTool, "export", "", "ffmpeg exited", nil), history.OutcomeFailed},
		{errors.New("unclassified"), history.OutcomeFailed},
	}
	for _, tc := range cases {
		if got := FailureOutcome(tc.err); got != tc.want {
			t.Fatalf("FailureOutcome(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
