package pyversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"3.6.0", []int{3, 6, 0}},
		{"3.10", []int{3, 10}},
		{"3", []int{3}},
		{"v3.12.1", []int{3, 12, 1}},
		{"3.13.0rc1", []int{3, 13, 0}},
		{"3.11.4+", []int{3, 11, 4}},
		{" 3.9.18\n", []int{3, 9, 18}},
		{"3.14a1.7", []int{3, 14}},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			v, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Segments)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "python", "x.1", ".3"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseInterpreterOutput(t *testing.T) {
	cases := []struct {
		name string
		out  string
		want string
	}{
		{"python3", "Python 3.11.4\n", "3.11.4"},
		{"python2 stderr", "Python 2.7.18", "2.7.18"},
		{"bare", "3.12.0", "3.12.0"},
		{"pypy banner", "Python 3.10.13 (fcdc, Sep 29 2023)\n[PyPy 7.3.13]", "3.10.13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseInterpreterOutput(tc.out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.String())
		})
	}

	_, err := ParseInterpreterOutput("   ")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestCompareIsNumericPerSegment(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"3.10.0", "3.9.0", 1},
		{"3.10.0", "3.6.0", 1},
		{"3.5.9", "3.6.0", -1},
		{"3.6.0", "3.6.0", 0},
		{"3.6", "3.6.0", 0},
		{"3.6.1", "3.6", 1},
		{"2.7.18", "3.6.0", -1},
		{"10.0", "9.99.99", 1},
	}
	for _, tc := range cases {
		t.Run(tc.a+"_vs_"+tc.b, func(t *testing.T) {
			a, b := MustParse(tc.a), MustParse(tc.b)
			assert.Equal(t, tc.want, a.Compare(b))
			assert.Equal(t, -tc.want, b.Compare(a))
		})
	}
}

func TestAtLeast(t *testing.T) {
	required := MustParse("3.6.0")
	assert.True(t, MustParse("3.10.0").AtLeast(required))
	assert.True(t, MustParse("3.6.0").AtLeast(required))
	assert.False(t, MustParse("3.5.9").AtLeast(required))
	assert.True(t, MustParse("3.5.9").Less(required))
}

func TestString(t *testing.T) {
	assert.Equal(t, "3.10.4", New(3, 10, 4).String())
	assert.Equal(t, "3.10", New(3, 10, 4).MinorString())
	assert.Equal(t, "3.0", New(3).MinorString())
	assert.Equal(t, "", Version{}.String())
}
