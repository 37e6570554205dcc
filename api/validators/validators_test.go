package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryListSplitsAndRepeats(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?accords=woody,%20citrus&accords=rose&accords=&season=", nil)
	assert.Equal(t, []string{"woody", "citrus", "rose"}, ParseQueryList(r, "accords"))
	assert.Empty(t, ParseQueryList(r, "season"))
	assert.Empty(t, ParseQueryList(r, "missing"))
}

func TestParseQueryBool(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"/", false},
		{"/?favorites", true},
		{"/?favorites=true", true},
		{"/?favorites=0", false},
	}
	for _, tc := range cases {
		got, err := ParseQueryBool(httptest.NewRequest(http.MethodGet, tc.query, nil), "favorites")
		require.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
	}

	_, err := ParseQueryBool(httptest.NewRequest(http.MethodGet, "/?favorites=maybe", nil), "favorites")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

type toggleBody struct {
	Code string `json:"code" validate:"required"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	var body toggleBody
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":""}`))
	err := DecodeJSONBody(r, &body)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]string{"code": "is required"}, typed.Details())

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"A1","extra":1}`))
	require.Error(t, DecodeJSONBody(r, &body))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"A1"}`))
	require.NoError(t, DecodeJSONBody(r, &body))
	assert.Equal(t, "A1", body.Code)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "rose", SanitizeString("  rose  ", 0))
	assert.Equal(t, "ros", SanitizeString("rose", 3))
	assert.Equal(t, "αβ", SanitizeString("  αβγ", 5))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  rose ", max: 0, want: "  rose "},
		{in: "rose", max: 10, want: "rose"},
		{in: " rose", max: 3, want: " ro"},
		{in: "ωραίο", max: 3, want: "ω"},
		{in: "blåbær", max: 3, want: "bl"},
		{in: "blåbær", max: 4, want: "blå"},
	}
	for _, tc := range cases {
		got := Truncate(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("Truncate(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}
