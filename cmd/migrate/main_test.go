package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	forced     int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Force(v int) error {
	f.forced = v
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand(nil)
	require.NoError(t, err)
	assert.Equal(t, command{name: "up"}, cmd)

	cmd, err = parseCommand([]string{"force", "3"})
	require.NoError(t, err)
	assert.Equal(t, command{name: "force", version: 3}, cmd)

	for _, args := range [][]string{
		{"force"},
		{"force", "abc"},
		{"force", "-1"},
		{"version", "2"},
		{"down"},
	} {
		_, err := parseCommand(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestRunUpTreatsNoChangeAsSuccess(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&fakeMigrator{upErr: migrate.ErrNoChange}, command{name: "up"}, &out))
	assert.Contains(t, out.String(), "up to date")

	err := run(&fakeMigrator{upErr: errors.New("dirty database")}, command{name: "up"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate up")
}

func TestRunForceAndVersion(t *testing.T) {
	var out bytes.Buffer
	m := &fakeMigrator{version: 1, dirty: true}

	require.NoError(t, run(m, command{name: "force", version: 1}, &out))
	assert.Equal(t, 1, m.forced)

	out.Reset()
	require.NoError(t, run(m, command{name: "version"}, &out))
	assert.Equal(t, "schema version 1 (dirty=true)\n", out.String())

	out.Reset()
	require.NoError(t, run(&fakeMigrator{versionErr: migrate.ErrNilVersion}, command{name: "version"}, &out))
	assert.Equal(t, "no migrations applied\n", out.String())
}
