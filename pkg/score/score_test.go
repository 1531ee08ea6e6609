package score

import (
	"reflect"
	"testing"

	"github.com/matzehuels/scorepager/pkg/errors"
)

func staffAt(page int, x, y, w, h float64) Staff {
	return Staff{Page: page, Start: Point{X: x, Y: y}, End: Point{X: x + w, Y: y + h}}
}

func TestStaffGeometry(t *testing.T) {
	s := staffAt(0, 10, 20, 100, 25)

	if got := s.Width(); got != 100 {
		t.Errorf("Width() = %v, want 100", got)
	}
	if got := s.Height(); got != 25 {
		t.Errorf("Height() = %v, want 25", got)
	}
	if got := s.AspectRatio(); got != 0.25 {
		t.Errorf("AspectRatio() = %v, want 0.25", got)
	}
}

func TestStaffUnion(t *testing.T) {
	a := staffAt(2, 10, 10, 100, 20)
	b := staffAt(3, 0, 25, 80, 20)

	got := a.Union(b)
	want := Staff{Page: 2, Start: Point{X: 0, Y: 10}, End: Point{X: 110, Y: 45}}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestStaffValidate(t *testing.T) {
	tests := []struct {
		name    string
		staff   Staff
		wantErr bool
	}{
		{"valid", staffAt(0, 0, 0, 10, 10), false},
		{"zero width", Staff{Start: Point{X: 5, Y: 0}, End: Point{X: 5, Y: 10}}, true},
		{"inverted height", Staff{Start: Point{X: 0, Y: 10}, End: Point{X: 10, Y: 0}}, true},
		{"negative page", staffAt(-1, 0, 0, 10, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.staff.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStaff) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStaff)
			}
		})
	}
}

func TestPieces(t *testing.T) {
	p := Pieces{0: "Prelude", 7: "", 3: "Fugue"}

	if got, want := p.Starts(), []int{0, 3, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("Starts() = %v, want %v", got, want)
	}
	if !p.IsStart(3) || p.IsStart(4) {
		t.Error("IsStart() mismatch")
	}
	if name, ok := p.Name(3); !ok || name != "Fugue" {
		t.Errorf("Name(3) = %q, %v", name, ok)
	}

	for staff, want := range map[int]int{0: 0, 2: 0, 3: 3, 6: 3, 7: 7, 100: 7, -1: -1} {
		if got := p.PieceOf(staff); got != want {
			t.Errorf("PieceOf(%d) = %d, want %d", staff, got, want)
		}
	}

	if start, ok := p.Find("Fugue"); !ok || start != 3 {
		t.Errorf("Find(Fugue) = %d, %v", start, ok)
	}
	if _, ok := p.Find("Toccata"); ok {
		t.Error("Find(Toccata) should fail")
	}
}

func TestPiecesValidate(t *testing.T) {
	tests := []struct {
		name   string
		pieces Pieces
		count  int
		code   errors.Code
	}{
		{"single", SinglePiece(), 3, ""},
		{"several", Pieces{0: "", 2: "b"}, 3, ""},
		{"missing zero", Pieces{1: ""}, 3, errors.ErrCodeMissingPieceStart},
		{"nil map", nil, 3, errors.ErrCodeMissingPieceStart},
		{"out of range", Pieces{0: "", 3: ""}, 3, errors.ErrCodeInvalidPiece},
		{"negative", Pieces{0: "", -2: ""}, 3, errors.ErrCodeInvalidPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pieces.Validate(tt.count)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestScoreValidate(t *testing.T) {
	valid := Score{
		Staves: []Staff{staffAt(0, 0, 0, 100, 20), staffAt(0, 0, 40, 100, 20)},
		Pieces: SinglePiece(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	empty := Score{Pieces: SinglePiece()}
	if err := empty.Validate(); !errors.Is(err, errors.ErrCodeEmptyScore) {
		t.Errorf("empty score error = %v, want EMPTY_SCORE", err)
	}

	broken := Score{Staves: []Staff{staffAt(0, 0, 0, 100, 20), {}}, Pieces: SinglePiece()}
	if err := broken.Validate(); !errors.Is(err, errors.ErrCodeInvalidStaff) {
		t.Errorf("broken staff error = %v, want INVALID_STAFF", err)
	}
}

func TestPieceNames(t *testing.T) {
	s := Score{Pieces: Pieces{0: "Allegro", 4: "", 9: "Rondo"}}
	if got, want := s.PieceNames(), []string{"Allegro", "Rondo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PieceNames() = %v, want %v", got, want)
	}
}
