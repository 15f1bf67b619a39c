package env

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatInt_Locale(t *testing.T) {
	en := New(language.English, nil, time.Time{}, nil)
	require.Equal(t, "10,000", en.FormatInt(10000))
	require.Equal(t, "999", en.FormatInt(999))

	de := New(language.German, nil, time.Time{}, nil)
	require.Equal(t, "10.000", de.FormatInt(10000))
	require.Equal(t, "1,5", de.FormatFloat(1.5, 1))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
		ok   bool
	}{
		{"de_DE.UTF-8", language.MustParse("de-DE"), true},
		{"en_US", language.MustParse("en-US"), true},
		{"fr_FR@euro", language.MustParse("fr-FR"), true},
		{"C", language.Tag{}, false},
		{"POSIX", language.Tag{}, false},
		{"", language.Tag{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLocale(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLoad_ExplicitOptions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := Load(Options{Locale: "de_DE.UTF-8", Timezone: "UTC", Now: now})
	require.Equal(t, language.MustParse("de-DE"), e.Locale)
	require.Equal(t, "UTC", e.Location.String())
	require.Equal(t, now, e.Now)
	require.NotNil(t, e.Names)
}

func TestNames_CachesLookups(t *testing.T) {
	var calls atomic.Int32
	names := NewNames(func(id string) (string, error) {
		calls.Add(1)
		if id == "1000" {
			return "alice", nil
		}
		return "", errors.New("unknown user")
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, ok := names.User(1000)
			assert.True(t, ok)
			assert.Equal(t, "alice", name)
		}()
	}
	wg.Wait()

	_, ok := names.User(4242)
	require.False(t, ok)
	_, ok = names.User(4242)
	require.False(t, ok)

	require.Equal(t, int32(2), calls.Load())
}

func TestInGroup(t *testing.T) {
	e := New(language.English, nil, time.Time{}, nil)
	e.GIDs[20] = true
	require.True(t, e.InGroup(20))
	require.False(t, e.InGroup(21))
}
