package record

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/shardline/pkg/errors"
)

func TestFromCode(t *testing.T) {
	r := FromCode(104, 3.4)
	if r.ID != "104" || r.Value != 3.4 {
		t.Errorf("FromCode(104, 3.4) = %+v", r)
	}
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{ID: "309", Value: 2.1}, "(309, 2.1)"},
		{Record{ID: "A", Value: 5}, "(A, 5)"},
		{Record{ID: "neg", Value: -0.25}, "(neg, -0.25)"},
	}

	for _, tt := range tests {
		if got := tt.rec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"valid", Record{ID: "104", Value: 3.4}, false},
		{"zero value", Record{ID: "x", Value: 0}, false},
		{"empty id", Record{ID: "", Value: 1}, true},
		{"nan", Record{ID: "a", Value: math.NaN()}, true},
		{"inf", Record{ID: "a", Value: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRecord) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRecord)
			}
		})
	}
}

func TestSequenceValidate(t *testing.T) {
	s := Sequence{{ID: "a", Value: 1}, {ID: "b", Value: math.NaN()}}
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() should reject NaN")
	}
	if err := (Sequence{}).Validate(); err != nil {
		t.Errorf("empty sequence should be valid: %v", err)
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		want bool
	}{
		{"nil", nil, true},
		{"single", Sequence{{ID: "a", Value: 1}}, true},
		{"ascending", Sequence{{ID: "a", Value: 1}, {ID: "b", Value: 2}}, true},
		{"ties", Sequence{{ID: "a", Value: 2}, {ID: "b", Value: 2}}, true},
		{"descending", Sequence{{ID: "a", Value: 2}, {ID: "b", Value: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seq.IsSorted(); got != tt.want {
				t.Errorf("IsSorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Sequence{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
	c := orig.Clone()
	c[0].Value = 99

	if orig[0].Value != 1 {
		t.Error("mutating the clone changed the original")
	}
	if got := Sequence(nil).Clone(); got == nil || len(got) != 0 {
		t.Errorf("nil.Clone() = %#v, want empty non-nil", got)
	}
}

func TestIDsAndString(t *testing.T) {
	s := Sequence{FromCode(309, 2.1), FromCode(104, 3.4)}

	if diff := cmp.Diff([]string{"309", "104"}, s.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	if got, want := s.String(), "[(309, 2.1) (104, 3.4)]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
