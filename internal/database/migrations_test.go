package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersion struct {
	version uint
	dirty   bool
	err     error
}

func (f fakeVersion) Version() (uint, bool, error) {
	return f.version, f.dirty, f.err
}

func TestCheckDirty(t *testing.T) {
	tests := []struct {
		name    string
		in      fakeVersion
		wantErr string
	}{
		{name: "fresh database", in: fakeVersion{err: migrate.ErrNilVersion}},
		{name: "clean", in: fakeVersion{version: 3}},
		{name: "dirty first migration", in: fakeVersion{version: 1, dirty: true}, wantErr: "run `migrate force -1`"},
		{name: "dirty later migration", in: fakeVersion{version: 4, dirty: true}, wantErr: "dirty at version 4"},
		{name: "version unreadable", in: fakeVersion{err: errors.New("connection refused")}, wantErr: "read migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDirty(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckDirtyNeverPointsAtTheFailedVersion(t *testing.T) {
	err := checkDirty(fakeVersion{version: 2, dirty: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate force 1")
	assert.NotContains(t, err.Error(), "migrate force 2")
}
