package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSubcommands(t *testing.T) {
	for _, name := range []string{"up", "down", "status"} {
		t.Run(name, func(t *testing.T) {
			found, _, err := rootCmd.Find([]string{"migrate", name})
			require.NoError(t, err)
			assert.Equal(t, name, found.Name())
		})
	}
}

func TestMigrateDown_RejectsExtraArgs(t *testing.T) {
	assert.Error(t, migrateDownCmd.Args(migrateDownCmd, []string{"1", "2"}))
	assert.NoError(t, migrateDownCmd.Args(migrateDownCmd, []string{"3"}))
}
