package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/qtbind/ir"
)

const fixture = "../../ir/testdata/my_object.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), append([]string{"qtbindgen"}, args...))
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "--ir", fixture, "--out", dir)
	require.NoError(t, err)

	for _, name := range []string{
		"my_object.qtbind.h",
		"my_object.qtbind.cpp",
		"my_object_qtbind.go",
		"qml_plugin.cpp",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, out, name)
	}
	assert.NoFileExists(t, filepath.Join(dir, "qtbind", "thread.h"))
}

func TestGenerate_Options(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "--ir", fixture, "--out", dir, "--headers", "--no-plugin", "--include-prefix", "gen/")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "qtbind", "thread.h"))
	assert.NoFileExists(t, filepath.Join(dir, "qml_plugin.cpp"))

	src, err := os.ReadFile(filepath.Join(dir, "my_object.qtbind.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(src), `#include "gen/my_object.qtbind.h"`)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := run(t, "generate", "--out", t.TempDir())
	assert.Error(t, err, "missing --ir")

	_, err = run(t, "generate", "--ir", "testdata/missing.yaml", "--out", t.TempDir())
	assert.Error(t, err)

	_, err = run(t, "generate", "--ir", fixture, "--out", t.TempDir(), "--model", "16")
	assert.ErrorContains(t, err, "unsupported data model")
}

func TestHeaders(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "headers", "--out", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "qtbind", "locking.h"))
	assert.Contains(t, out, "maybelockguard.h")
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "package myobject")
	assert.Contains(t, out, "::cxx_qt::my_object::MyObject")
	assert.Contains(t, out, "countChanged")
	assert.Contains(t, out, "objectNameChanged")
	assert.Contains(t, out, "increment")
	assert.Contains(t, out, "value Point")

	_, err = run(t, "inspect")
	assert.ErrorContains(t, err, "usage")
}

func TestSummary_Externs(t *testing.T) {
	f, err := ir.LoadFile(fixture)
	require.NoError(t, err)
	f.Externs = []ir.ExternObject{{Name: "QTimer", Signals: []ir.Signal{{Name: "timeout"}}}}

	assert.Contains(t, summary(f), "(1 signals)")
	assert.Contains(t, summary(f), "::QTimer")
}

func TestLayout(t *testing.T) {
	out, err := run(t, "layout", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "size=8 align=4 relocatable=true")
	assert.Contains(t, out, "+4")

	_, err = run(t, "layout", "--model", "48", fixture)
	assert.Error(t, err)
}

func TestMembers(t *testing.T) {
	f, err := ir.LoadFile(fixture)
	require.NoError(t, err)

	ms := members(&f.Objects[0])
	kinds := make(map[string]int)
	for _, m := range ms {
		kinds[m.kind]++
	}
	assert.Equal(t, 3, kinds["property"])
	assert.Equal(t, 5, kinds["signal"])
	assert.Equal(t, 1, kinds["constructor"])
	assert.Equal(t, 1, kinds["enum"])

	assert.Equal(t, member{kind: "property", name: "version", detail: "qint32 [getVersion, constant]"}, ms[2])
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInteractiveModel(t *testing.T) {
	f, err := ir.LoadFile(fixture)
	require.NoError(t, err)

	m := newInteractiveModel("my_object.yaml", f)
	assert.Contains(t, m.View(), "Select an object")

	m.Update(key("enter"))
	require.Equal(t, stateBrowseMembers, m.state)
	assert.Len(t, m.visible, len(m.members))
	assert.Contains(t, m.View(), "increment")

	m.Update(key("j"))
	assert.Equal(t, 1, m.cursor)
	m.Update(key("k"))
	m.Update(key("k"))
	assert.Equal(t, 0, m.cursor)

	m.Update(key("/"))
	require.Equal(t, stateFilter, m.state)
	for _, r := range "signal" {
		m.Update(key(string(r)))
	}
	assert.Len(t, m.visible, 5)
	m.Update(key("enter"))
	assert.Equal(t, stateBrowseMembers, m.state)

	m.Update(key("enter"))
	require.Equal(t, stateShowMember, m.state)
	assert.Contains(t, m.View(), "ready")

	m.Update(key("esc"))
	m.Update(key("esc"))
	assert.Equal(t, stateSelectObject, m.state)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
