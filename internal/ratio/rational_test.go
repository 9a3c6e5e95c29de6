package ratio

import "testing"

func TestNewNormalizes(t *testing.T) {
	cases := []struct {
		num, den    int
		wantNum     int
		wantDen     int
	}{
		{6, 8, 3, 4},
		{-6, 8, -3, 4},
		{6, -8, -3, 4},
		{0, 5, 0, 1},
	}
	for _, c := range cases {
		got := New(c.num, c.den)
		if got.Num != c.wantNum || got.Den != c.wantDen {
			t.Errorf("New(%d,%d) = %d/%d, want %d/%d", c.num, c.den, got.Num, got.Den, c.wantNum, c.wantDen)
		}
	}
}

func TestArithmetic(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)
	if got := half.Add(third); !got.Equal(New(5, 6)) {
		t.Errorf("1/2+1/3 = %v, want 5/6", got)
	}
	if got := half.Sub(third); !got.Equal(New(1, 6)) {
		t.Errorf("1/2-1/3 = %v, want 1/6", got)
	}
	if got := half.Mul(third); !got.Equal(New(1, 6)) {
		t.Errorf("1/2*1/3 = %v, want 1/6", got)
	}
	if got := half.Div(third); !got.Equal(New(3, 2)) {
		t.Errorf("1/2 / 1/3 = %v, want 3/2", got)
	}
}

func TestLCMAll(t *testing.T) {
	if got := LCMAll([]int{2, 3, 4}); got != 12 {
		t.Errorf("LCMAll(2,3,4) = %d, want 12", got)
	}
	if got := LCMAll(nil); got != 1 {
		t.Errorf("LCMAll(nil) = %d, want 1", got)
	}
}

func TestDivisionByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(1, 0)
}
