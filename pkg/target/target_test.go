// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"testing"
)

func defaultMatrix() Matrix {
	return Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: FamilyLinux},
		{Triple: "aarch64-unknown-linux-gnu", Family: FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: FamilyWindows},
	}
}

func TestTarget_ReleaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   string
	}{
		{Target{Triple: "x86_64-unknown-linux-gnu", Family: FamilyLinux}, "romboss-x86_64-unknown-linux-gnu"},
		{Target{Triple: "x86_64-pc-windows-gnu", Family: FamilyWindows}, "romboss-x86_64-pc-windows-gnu.exe"},
		{Target{Triple: "aarch64-apple-darwin", Family: FamilyDarwin}, "romboss-aarch64-apple-darwin"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target.Triple), func(t *testing.T) {
			t.Parallel()
			if got := tt.target.ReleaseName("romboss"); got != tt.want {
				t.Errorf("ReleaseName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTarget_BinaryName(t *testing.T) {
	t.Parallel()

	win := Target{Triple: "x86_64-pc-windows-msvc", Family: FamilyWindows}
	if got := win.BinaryName("romboss"); got != "romboss.exe" {
		t.Errorf("BinaryName() = %q, want romboss.exe", got)
	}
	lin := Target{Triple: "x86_64-unknown-linux-musl", Family: FamilyLinux}
	if got := lin.BinaryName("romboss"); got != "romboss" {
		t.Errorf("BinaryName() = %q, want romboss", got)
	}
}

func TestInferFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		triple Triple
		want   Family
		ok     bool
	}{
		{"x86_64-unknown-linux-gnu", FamilyLinux, true},
		{"armv7-unknown-linux-gnueabihf", FamilyLinux, true},
		{"x86_64-pc-windows-gnu", FamilyWindows, true},
		{"i686-pc-windows-msvc", FamilyWindows, true},
		{"aarch64-apple-darwin", FamilyDarwin, true},
		{"wasm32-unknown-unknown", "", false},
		{"linux", "", false},
	}

	for _, tt := range tests {
		got, ok := InferFamily(tt.triple)
		if got != tt.want || ok != tt.ok {
			t.Errorf("InferFamily(%q) = (%q, %v), want (%q, %v)", tt.triple, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	got, err := New("x86_64-pc-windows-gnu", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got.Family != FamilyWindows {
		t.Errorf("inferred family = %q, want windows", got.Family)
	}

	explicit, err := New("x86_64-pc-windows-gnu", FamilyLinux)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if explicit.Family != FamilyLinux {
		t.Errorf("explicit family should win, got %q", explicit.Family)
	}

	if _, err := New("wasm32-unknown-unknown", ""); !errors.Is(err, ErrInvalidFamily) {
		t.Errorf("New() on uninferable triple: error = %v, want ErrInvalidFamily", err)
	}
	if _, err := New("bad triple", FamilyLinux); !errors.Is(err, ErrInvalidTriple) {
		t.Errorf("New() with whitespace: error = %v, want ErrInvalidTriple", err)
	}
}

func TestTriple_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		triple Triple
		want   bool
	}{
		{"x86_64-unknown-linux-gnu", true},
		{"", false},
		{"x86_64 linux", false},
		{"x86_64/linux", false},
		{`x86_64\linux`, false},
	}

	for _, tt := range tests {
		valid, errs := tt.triple.IsValid()
		if valid != tt.want {
			t.Errorf("Triple(%q).IsValid() = %v, want %v", tt.triple, valid, tt.want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidTriple) {
			t.Errorf("error should wrap ErrInvalidTriple, got %v", errs[0])
		}
	}
}

func TestMatrix_Validate(t *testing.T) {
	t.Parallel()

	if err := defaultMatrix().Validate("romboss"); err != nil {
		t.Fatalf("default matrix should be valid, got %v", err)
	}

	tests := []struct {
		name    string
		matrix  Matrix
		binary  string
		wantErr error
	}{
		{
			name:    "empty",
			matrix:  nil,
			binary:  "romboss",
			wantErr: ErrInvalidMatrix,
		},
		{
			name: "duplicate triple",
			matrix: Matrix{
				{Triple: "x86_64-unknown-linux-gnu", Family: FamilyLinux},
				{Triple: "x86_64-unknown-linux-gnu", Family: FamilyWindows},
			},
			binary:  "romboss",
			wantErr: ErrDuplicateTriple,
		},
		{
			name: "case-only difference collides",
			matrix: Matrix{
				{Triple: "x86_64-unknown-linux-gnu", Family: FamilyLinux},
				{Triple: "X86_64-unknown-linux-gnu", Family: FamilyLinux},
			},
			binary:  "romboss",
			wantErr: ErrReleaseNameCollision,
		},
		{
			name: "unknown family",
			matrix: Matrix{
				{Triple: "x86_64-unknown-linux-gnu", Family: "beos"},
			},
			binary:  "romboss",
			wantErr: ErrInvalidFamily,
		},
		{
			name: "reserved windows binary name",
			matrix: Matrix{
				{Triple: "x86_64-pc-windows-gnu", Family: FamilyWindows},
			},
			binary:  "aux",
			wantErr: ErrReservedBinaryName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.matrix.Validate(tt.binary)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("Validate() error should wrap ErrInvalidMatrix, got %v", err)
			}
		})
	}
}

func TestMatrix_ReleaseNamesInjective(t *testing.T) {
	t.Parallel()

	m := Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: FamilyLinux},
		{Triple: "x86_64-unknown-linux-musl", Family: FamilyLinux},
		{Triple: "aarch64-unknown-linux-gnu", Family: FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: FamilyWindows},
		{Triple: "x86_64-pc-windows-msvc", Family: FamilyWindows},
		{Triple: "aarch64-apple-darwin", Family: FamilyDarwin},
	}
	if err := m.Validate("romboss"); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	seen := make(map[string]Triple)
	for _, tgt := range m {
		name := tgt.ReleaseName("romboss")
		if other, ok := seen[name]; ok {
			t.Errorf("%s and %s share release name %q", other, tgt.Triple, name)
		}
		seen[name] = tgt.Triple
	}
}

func TestMatrix_LookupAndByFamily(t *testing.T) {
	t.Parallel()

	m := defaultMatrix()

	got, err := m.Lookup("x86_64-pc-windows-gnu")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Family != FamilyWindows {
		t.Errorf("Lookup().Family = %q, want windows", got.Family)
	}

	_, err = m.Lookup("riscv64gc-unknown-linux-gnu")
	var unknown *UnknownTargetError
	if !errors.As(err, &unknown) || unknown.Triple != "riscv64gc-unknown-linux-gnu" {
		t.Errorf("Lookup() of unconfigured triple: error = %v", err)
	}

	linux := m.ByFamily(FamilyLinux)
	if len(linux) != 2 || linux[0].Triple != "x86_64-unknown-linux-gnu" || linux[1].Triple != "aarch64-unknown-linux-gnu" {
		t.Errorf("ByFamily(linux) = %v, want declared order", linux)
	}

	triples := m.Triples()
	if len(triples) != 3 || triples[2] != "x86_64-pc-windows-gnu" {
		t.Errorf("Triples() = %v", triples)
	}
}
