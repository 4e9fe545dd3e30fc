package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"skirmish/config"
	"skirmish/sessions"
	"skirmish/store"
	"skirmish/wire"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedTime = time.Unix(1234567890, 0)

func testSession() *wire.Session {
	s := wire.NewSession(wire.Entity{Name: "Gilgamesh", Health: 3}, fixedTime)
	s.AddOpponent(wire.Entity{Name: "Tommy the Extremely Long Named", Health: 2}, fixedTime)
	s.Record(wire.NewAction(wire.ActionKindFight, "Gilgamesh", "Tommy the Extremely Long Named", fixedTime))
	return s
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", "yaml"} {
		_, err := ParseFormat(in)
		require.NoError(t, err)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestRenderer_SessionText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, config.DefaultConfig.Display)
	require.NoError(t, r.Session(testSession()))
	out := buf.String()

	require.True(t, strings.Index(out, "Opponents:") < strings.Index(out, "Party:"))
	require.Contains(t, out, "Gilgamesh")
	// names are cut to the column width
	require.Contains(t, out, "Tommy the Extre")
	require.NotContains(t, out, "Tommy the Extremely")
	require.Contains(t, out, "Fight")
	require.Contains(t, out, "2009-02-13T23:31:30Z")
	require.NotContains(t, out, "♥")

	buf.Reset()
	r.SetGlyphs(true)
	require.NoError(t, r.Session(testSession()))
	require.Contains(t, buf.String(), "♥♥♥")
}

func TestRenderer_EmptyOpponents(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, config.DefaultConfig.Display)
	require.NoError(t, r.Session(wire.NewSession(wire.NewEntity("florp"), fixedTime)))
	require.Contains(t, buf.String(), "(none)")
}

func TestRenderer_SessionJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatJSON, config.DefaultConfig.Display)
	require.NoError(t, r.Session(testSession()))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	actions := out["actions"].([]interface{})
	require.Len(t, actions, 3)
	require.Equal(t, "Fight", actions[2].(map[string]interface{})["kind"])
}

func TestRenderer_SessionYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatYAML, config.DefaultConfig.Display)
	require.NoError(t, r.Session(testSession()))

	var out struct {
		Party []struct {
			Name   string `yaml:"name"`
			Health int    `yaml:"health"`
		} `yaml:"party"`
		Actions []struct {
			Kind string `yaml:"kind"`
		} `yaml:"actions"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "Gilgamesh", out.Party[0].Name)
	require.Equal(t, 3, out.Party[0].Health)
	require.Equal(t, "Spawn", out.Actions[0].Kind)
}

func TestRenderer_Tables(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, config.DefaultConfig.Display)
	require.NoError(t, r.SessionInfos([]*store.SessionInfo{
		{Name: "florp", PartySize: 1, ActionCount: 1, Size: 42},
	}))
	require.Contains(t, buf.String(), "florp")

	buf.Reset()
	require.NoError(t, r.VerifyResults([]sessions.VerifyResult{
		{Name: "good", Size: 10},
		{Name: "bad", Err: "boom"},
	}))
	require.Contains(t, buf.String(), "FAILED")
	require.Contains(t, buf.String(), "boom")
}

var errClosedPipe = errors.New("closed pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errClosedPipe
}

func TestRenderer_WriteError(t *testing.T) {
	r := NewRenderer(failingWriter{}, FormatText, config.DefaultConfig.Display)
	err := r.Session(testSession())
	require.True(t, errors.Is(err, errClosedPipe))

	empty := wire.NewSession(wire.NewEntity("florp"), fixedTime)
	require.True(t, errors.Is(r.Session(empty), errClosedPipe))
}
