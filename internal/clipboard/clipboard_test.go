package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
	err error
}

func (r *recorder) Write(text string) error {
	r.got = append(r.got, text)
	return r.err
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()
	failing := &recorder{err: errors.New("boom")}
	ok := &recorder{}
	never := &recorder{}

	require.NoError(t, Chain{failing, ok, never}.Write("addr"))
	require.Equal(t, []string{"addr"}, failing.got)
	require.Equal(t, []string{"addr"}, ok.got)
	require.Empty(t, never.got)
}

func TestChainJoinsErrors(t *testing.T) {
	t.Parallel()
	a := &recorder{err: errors.New("first")}
	b := &recorder{err: errors.New("second")}
	err := Chain{a, b}.Write("x")
	require.ErrorContains(t, err, "first")
	require.ErrorContains(t, err, "second")
	require.ErrorIs(t, Chain{}.Write("x"), ErrUnsupported)
}

func TestOSC52Sequence(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	env := func(string) string { return "" }
	require.NoError(t, OSC52{Out: &buf, Env: env}.Write("hello"))
	require.Contains(t, buf.String(), "\x1b]52;c;"+base64.StdEncoding.EncodeToString([]byte("hello")))

	buf.Reset()
	tmux := func(k string) string {
		if k == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}
	require.NoError(t, OSC52{Out: &buf, Env: tmux}.Write("hello"))
	require.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestNewModes(t *testing.T) {
	t.Parallel()
	w, err := New("system")
	require.NoError(t, err)
	require.IsType(t, System{}, w)

	w, err = New("OSC52")
	require.NoError(t, err)
	require.IsType(t, OSC52{}, w)

	w, err = New("")
	require.NoError(t, err)
	require.IsType(t, Chain{}, w)

	_, err = New("carrier-pigeon")
	require.Error(t, err)
}
